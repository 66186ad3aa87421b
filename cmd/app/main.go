// Package main wires the smart food manager core: configuration, logging and
// the repository, with file persistence on startup and shutdown.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ItamarS3917/smart-food-manager/internal/infrastructure/config"
	"github.com/ItamarS3917/smart-food-manager/internal/infrastructure/persistence/memory"
	"github.com/ItamarS3917/smart-food-manager/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "smart-food-manager: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment))

	repo := memory.NewRepository(log.Named("repository"))

	if cfg.Storage.LoadOnStart {
		if err := repo.LoadFromFile(cfg.Storage.FilePath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Info("no existing store, starting empty",
					zap.String("path", cfg.Storage.FilePath))
			} else {
				return err
			}
		}
	}

	stats := repo.InventoryStatistics()
	log.Info("inventory",
		zap.Float64("total_value", stats[memory.StatTotalValue]),
		zap.Float64("total_items", stats[memory.StatTotalItems]),
		zap.Float64("expired", stats[memory.StatExpiredCount]),
		zap.Float64("low_stock", stats[memory.StatLowStockCount]))

	// The core has no server loop; external collaborators (REST layer, GUI)
	// drive the repository. Block until asked to shut down.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if cfg.Storage.SaveOnExit {
		if err := repo.SaveToFile(cfg.Storage.FilePath); err != nil {
			return err
		}
	}

	log.Info("shutdown complete")
	return nil
}
