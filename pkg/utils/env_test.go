package utils

import "testing"

func TestLoadEnvWithDefault(t *testing.T) {
	t.Setenv("SERUMGW_TEST_TOKEN", "abc")
	if got := LoadEnvWithDefault("SERUMGW_TEST_TOKEN", "fallback"); got != "abc" {
		t.Errorf("set env = %v, want abc", got)
	}
	if got := LoadEnvWithDefault("SERUMGW_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("missing env = %v, want fallback", got)
	}
}

func TestLoadIntEnvWithDefault(t *testing.T) {
	t.Setenv("SERUMGW_TEST_ACK_TIMEOUT_MS", "250")
	if got := LoadIntEnvWithDefault("SERUMGW_TEST_ACK_TIMEOUT_MS", 10000); got != 250 {
		t.Errorf("set env = %v, want 250", got)
	}
	if got := LoadIntEnvWithDefault("SERUMGW_TEST_MISSING", 10000); got != 10000 {
		t.Errorf("missing env = %v, want 10000", got)
	}
	t.Setenv("SERUMGW_TEST_EMPTY", "")
	if got := LoadIntEnvWithDefault("SERUMGW_TEST_EMPTY", 7); got != 7 {
		t.Errorf("empty env = %v, want 7", got)
	}
}
