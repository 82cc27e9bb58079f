package core

import (
	"context"
	"sync"
	"time"

	"serumgw/pkg/connector"

	log "github.com/sirupsen/logrus"
)

const DEFAULT_REFRESH_INTERVAL_MS = 60000

// Run refreshes every connector's market registry on a fixed interval until
// the context is canceled. A failed refresh keeps the previous registry; the
// next tick retries.
func Run(ctx context.Context, refreshInterval time.Duration) error {
	log.Info("🦿 Running...")

	if refreshInterval <= 0 {
		refreshInterval = DEFAULT_REFRESH_INTERVAL_MS * time.Millisecond
	}
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			refreshAll(ctx)
		}
	}
}

func refreshAll(ctx context.Context) {
	var wg sync.WaitGroup
	for connID, conn := range Connectors {
		wg.Add(1)
		go func(connID string, conn connector.Connector) {
			defer wg.Done()
			if err := conn.RefreshMarkets(ctx); err != nil {
				log.Errorf("🚩 failed to refresh markets for connector %v: %v", connID, err)
			}
		}(connID, conn)
	}
	wg.Wait()
}
