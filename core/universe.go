package core

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"serumgw/config"
	"serumgw/pkg/connector"
	"serumgw/pkg/provider"
	"serumgw/pkg/serum"
	"serumgw/pkg/snapshot"
	"serumgw/pkg/types"
	"serumgw/pkg/utils"
)

var Connectors map[string]connector.Connector

func init() {
	Connectors = make(map[string]connector.Connector)
}

func RegisterConnector(ctx context.Context, connID string, connConfig *config.ConnectorConfig, store snapshot.Store) error {
	switch connConfig.ConnectorName {
	case types.ConnectorSerum:
		token := utils.LoadEnvWithDefault(connConfig.EnvPrefix+"_API_TOKEN", "")
		p := provider.NewClient(connConfig.DataURL, token)
		if err := p.Ping(ctx); err != nil {
			log.Warnf("🚩 data node unreachable for connector %v: %v", connID, err)
		}

		opts := serum.Options{
			Snapshots:   store,
			SnapshotKey: connID + "-markets.bin",
			WsURL:       connConfig.WsURL,
		}
		// the env override lets one deployment tighten the ack window without
		// touching the shared yaml
		ackTimeoutMs := utils.LoadIntEnvWithDefault(connConfig.EnvPrefix+"_ACK_TIMEOUT_MS", connConfig.AckTimeoutMs)
		if ackTimeoutMs > 0 {
			opts.AckTimeout = time.Duration(ackTimeoutMs) * time.Millisecond
		}
		Connectors[connID] = serum.New(p, opts)
		return nil
	default:
		return fmt.Errorf("unsupported connector '%v'", connConfig.ConnectorName)
	}
}
