package core

import (
	"context"
	"fmt"

	"serumgw/config"
	"serumgw/pkg/snapshot"
	"serumgw/pkg/types"
	"serumgw/pkg/utils"

	log "github.com/sirupsen/logrus"
)

func Bootstrap(ctx context.Context, config config.Config) error {
	log.Info("🦾 Bootstrapping...")

	store, err := setupSnapshotStore(config.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to set up snapshot store: %w", err)
	}

	// register connectors and load their market registries
	for connID, connConfig := range config.ConnectorConfigs {
		if err := RegisterConnector(ctx, connID, connConfig, store); err != nil {
			return fmt.Errorf("failed to register connector %v: %w", connID, err)
		}
		log.Infof("connector '%v' registered", connID)

		conn, exists := Connectors[connID]
		if !exists {
			return fmt.Errorf("connector %v not found", connID)
		}
		if err := conn.RefreshMarkets(ctx); err != nil {
			return fmt.Errorf("failed to load markets for connector %v: %w", connID, err)
		}
	}
	return nil
}

func setupSnapshotStore(snapConfig *config.SnapshotConfig) (snapshot.Store, error) {
	if snapConfig == nil {
		return nil, nil
	}
	switch snapConfig.Mode {
	case types.SnapshotModeS3:
		accessKey := utils.LoadEnv("AWS_ACCESS_KEY")
		secretKey := utils.LoadEnv("AWS_SECRET_KEY")
		return snapshot.NewS3Store(accessKey, secretKey, snapConfig.Region, snapConfig.Bucket)
	case types.SnapshotModeLocal:
		return &snapshot.FileStore{Dir: snapConfig.Dir}, nil
	default:
		return nil, fmt.Errorf("unknown snapshot mode '%v'", snapConfig.Mode)
	}
}
