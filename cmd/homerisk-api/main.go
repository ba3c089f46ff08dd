package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/homerisk/homerisk/internal/config"
	"github.com/homerisk/homerisk/internal/logger"
	"github.com/homerisk/homerisk/internal/router"
	"github.com/homerisk/homerisk/internal/setup"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 15 * time.Second
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize", "error", err)
		os.Exit(1)
	}

	r := router.New(deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Public.Port
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logger.Log.Info("server started", "port", port)
	if err := server.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
