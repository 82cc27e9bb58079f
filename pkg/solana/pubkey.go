package solana

import (
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
)

const PublicKeyLength = 32

// PublicKey is a 32-byte on-chain account identifier.
type PublicKey [PublicKeyLength]byte

func PublicKeyFromBase58(s string) (PublicKey, error) {
	var pk PublicKey
	if s == "" {
		return pk, fmt.Errorf("empty public key")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("fail to decode public key '%v': %w", s, err)
	}
	if len(raw) != PublicKeyLength {
		return pk, fmt.Errorf("invalid public key length %v for '%v'", len(raw), s)
	}
	copy(pk[:], raw)
	return pk, nil
}

// MustPublicKeyFromBase58 panics on malformed input; for fixtures and constants only.
func MustPublicKeyFromBase58(s string) PublicKey {
	pk, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

func (pk PublicKey) Equals(other PublicKey) bool {
	return pk == other
}

func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.String())
}

func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := PublicKeyFromBase58(s)
	if err != nil {
		return err
	}
	*pk = decoded
	return nil
}
