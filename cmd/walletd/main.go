// Package main provides walletd, the HD wallet daemon.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/backend"
	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/config"
	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/rpc"
	"github.com/PromiseGameFi/Passkey-WallletAuth/internal/token"
	"github.com/PromiseGameFi/Passkey-WallletAuth/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	var (
		dataDir     = flag.String("data-dir", "~/.walletd", "Data directory")
		network     = flag.String("network", "", "Network name (mainnet, sepolia, polygon, bsc), overrides config")
		nodeURL     = flag.String("node", "", "EVM node JSON-RPC URL, overrides config")
		apiAddr     = flag.String("api", "", "JSON-RPC API address, overrides config")
		tokensFile  = flag.String("tokens", "", "Token list YAML file, overrides config")
		logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	// Initial logger, may be reconfigured once the config is loaded
	log := logging.New(&logging.Config{
		Level:      "info",
		TimeFormat: time.TimeOnly,
	})
	logging.SetDefault(log)

	if *showVersion {
		log.Infof("walletd %s (commit: %s)", version, commit)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*dataDir)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// CLI flags take precedence over the config file
	if *network != "" {
		cfg.Network = *network
	}
	if *nodeURL != "" {
		cfg.Node.RPCURL = *nodeURL
	}
	if *apiAddr != "" {
		cfg.API.ListenAddr = *apiAddr
	}
	if *tokensFile != "" {
		cfg.TokensFile = *tokensFile
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config", "error", err)
	}

	log = logging.New(&logging.Config{
		Level:      cfg.Logging.Level,
		TimeFormat: time.TimeOnly,
	})
	logging.SetDefault(log)

	params, err := cfg.ChainParams()
	if err != nil {
		log.Fatal("Failed to resolve network", "error", err)
	}
	log.Info("Config loaded", "path", filepath.Join(*dataDir, config.ConfigFileName), "network", params.Name)

	// Token registry: explicit file or the built-in default set
	var registry *token.Registry
	if cfg.TokensFile != "" {
		registry, err = token.Load(cfg.TokensFile)
		if err != nil {
			log.Fatal("Failed to load token list", "error", err)
		}
		log.Info("Token list loaded", "path", cfg.TokensFile, "tokens", registry.Len())
	} else {
		registry = token.Default()
		log.Info("Using built-in token list", "tokens", registry.Len())
	}

	// Chain backend
	client := backend.NewEVMClient(&cfg.Node)
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := client.Connect(connectCtx); err != nil {
		log.Warn("Node not reachable, chain operations will fail until it is", "url", cfg.Node.RPCURL, "error", err)
	} else {
		if chainID, err := client.ChainID(connectCtx); err == nil && chainID != params.ChainID {
			log.Warn("Node chain ID does not match network", "node", chainID, "network", params.ChainID)
		}
		log.Info("Connected to node", "url", cfg.Node.RPCURL)
	}
	cancel()
	defer client.Close()

	// RPC server
	rpcServer := rpc.NewServer(cfg, params, client, registry)
	if err := rpcServer.Start(cfg.API.ListenAddr); err != nil {
		log.Fatal("Failed to start RPC server", "error", err)
	}

	printBanner(log, cfg, params.Name)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	log.Info("Shutting down...")

	if err := rpcServer.Stop(); err != nil {
		log.Error("Error stopping RPC server", "error", err)
	}

	log.Info("Goodbye!")
}

func printBanner(log *logging.Logger, cfg *config.Config, network string) {
	log.Info("")
	log.Info("=================================================")
	log.Infof("  walletd (%s)", network)
	log.Infof("  Version: %s", version)
	log.Info("=================================================")
	log.Info("")
	log.Infof("  API: http://%s", cfg.API.ListenAddr)
	log.Infof("  WS:  ws://%s/ws", cfg.API.ListenAddr)
	log.Infof("  Node: %s", cfg.Node.RPCURL)
	log.Info("")
	log.Info("=================================================")
	log.Info("")
}
