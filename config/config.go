package config

import (
	"os"
	"serumgw/pkg/types"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server           *ServerConfig               `yaml:"server"`
	Snapshot         *SnapshotConfig             `yaml:"snapshot"`
	ConnectorConfigs map[string]*ConnectorConfig `yaml:"connector"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type SnapshotConfig struct {
	Mode   types.SnapshotMode `yaml:"mode"`
	Dir    string             `yaml:"dir"`    // LOCAL mode
	Bucket string             `yaml:"bucket"` // S3 mode
	Region string             `yaml:"region"` // S3 mode
}

type ConnectorConfig struct {
	ConnectorName     types.ConnectorName `yaml:"connector"`
	DataURL           string              `yaml:"dataUrl"`
	WsURL             string              `yaml:"wsUrl"`
	EnvPrefix         string              `yaml:"envPrefix"`
	AckTimeoutMs      int                 `yaml:"ackTimeoutMs"`      // optional
	RefreshIntervalMs int                 `yaml:"refreshIntervalMs"` // optional
}

func LoadConfig(envName types.EnvName) (*Config, error) {
	// read YAML file
	var data []byte
	var err error

	yamlFiles := map[types.EnvName]string{
		types.EnvLocal: "serumgw.yaml",
		types.EnvDev:   "serumgw.dev.yaml",
		types.EnvProd:  "serumgw.prod.yaml",
	}
	fileName := yamlFiles[envName]
	data, err = os.ReadFile(fileName)
	if err != nil {
		log.Fatalf("fail to load config file '%s': %v", fileName, err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		log.Fatalf("fail to decode config file '%v': %v", config, err)
	}
	return &config, nil
}
