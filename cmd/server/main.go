// Package main - Entry point for the URL generation server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"cldurl/api"
	"cldurl/core/engine"
	"cldurl/internal/config"
	"cldurl/internal/logging"
)

func main() {
	addr := pflag.String("addr", ":8080", "Server address")
	cfgFile := pflag.String("config", "", "Config file (default is $CLOUDINARY_URL)")
	pflag.Parse()

	var (
		cfg config.Config
		err error
	)
	if *cfgFile != "" {
		cfg, err = config.Load(*cfgFile)
	} else {
		cfg, err = config.FromEnvironment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	// Create API server
	server := api.NewServer(engine.Version, cfg, api.WithLogger(logging.Named("api")))

	logging.Info("starting server",
		zap.String("addr", *addr),
		zap.String("version", engine.Version),
		zap.String("cloud_name", cfg.Cloud.CloudName),
		logging.Masked("api_key", cfg.Cloud.APIKey))

	if err := server.ListenAndServe(*addr); err != nil {
		logging.Error("server stopped", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}
