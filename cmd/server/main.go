package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/orderdesk/orderdesk/internal/app/bootstrap"
)

func main() {
	configPath := flag.String("config", "configs/default.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := bootstrap.Load(*configPath)
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	runtime, err := bootstrap.NewRuntime(cfg)
	if err != nil {
		slog.Error("bootstrap", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := runtime.RunAPI(); err != nil {
		slog.Error("serve", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
