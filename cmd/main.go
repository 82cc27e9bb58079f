package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serumgw/config"
	"serumgw/core"
	"serumgw/pkg/types"

	log "github.com/sirupsen/logrus"
)

func main() {
	configureLog(config.Env.EnvName)

	// init context for graceful shutdown
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// load config
	config, err := config.LoadConfig(config.Env.EnvName)
	if err != nil {
		log.Fatalf("fail to load config: %v", err)
	}

	// trap signal for graceful shutdown
	setupSignalHandler(cancel)

	// 📊 core: connector registry
	err = core.Bootstrap(rootCtx, *config)
	if err != nil {
		log.Panicf("fail to bootstrap app: %v", err)
	}
	go func() {
		refreshInterval := time.Duration(0)
		for _, connConfig := range config.ConnectorConfigs {
			if connConfig.RefreshIntervalMs > 0 {
				refreshInterval = time.Duration(connConfig.RefreshIntervalMs) * time.Millisecond
			}
		}
		if err := core.Run(rootCtx, refreshInterval); err != nil && err != context.Canceled {
			log.Errorf("Runtime error: %v", err)
			cancel()
		}
	}()

	// 🌩️ fiber: rest API module
	port := 3000
	if config.Server != nil && config.Server.Port > 0 {
		port = config.Server.Port
	}
	fApp := core.SetupFiberApp()
	go func() {
		<-rootCtx.Done()
		core.ShutdownFiberApp(fApp)
	}()
	if err := fApp.Listen(fmt.Sprintf(":%d", port)); err != nil {
		log.Panic(err)
	}
}

func configureLog(envName types.EnvName) {
	log.SetLevel(log.InfoLevel)
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if envName == types.EnvLocal || envName == types.EnvDev {
		log.SetLevel(log.DebugLevel)
	}
}

func setupSignalHandler(cancel context.CancelFunc) {
	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigC
		log.Info("🚩 received shutdown signal")
		cancel()
	}()
}
