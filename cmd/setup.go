package cmd

import (
	"fmt"
	"time"

	"mention-scanner/core/config"
	"mention-scanner/core/database"
	"mention-scanner/core/logger"
	"mention-scanner/core/storage"
	"mention-scanner/feature/catalog"
	"mention-scanner/feature/catalog/snapshot"
	"mention-scanner/feature/catalog/store"
	"mention-scanner/feature/catalog/wiki"
	"mention-scanner/feature/mentions"

	"go.uber.org/zap"
)

// application bundles the long-lived collaborators every command assembles
// from configuration.
type application struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog *catalog.Service
}

// newApplication loads configuration and wires the catalog service. The
// database store and the snapshot archive are optional: when either backend
// is unreachable the catalog runs without it.
func newApplication() (*application, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var st *store.Store
	if db, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed, catalog runs without a store", zap.Error(err))
	} else if st, err = store.New(db); err != nil {
		return nil, err
	}

	var archive *snapshot.Archive
	if client, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Optional storage client failed, snapshot archival disabled", zap.Error(err))
	} else {
		archive = snapshot.New(client, cfg.Storage.Bucket, logg)
	}

	scraper := wiki.NewScraper(logg, time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second)
	scraper.SetBaseURL(cfg.Catalog.BaseURL)
	scraper.FetchDetails = cfg.Catalog.FetchDetails

	readers, err := catalog.NewReaders(cfg.Catalog, scraper, st, archive, logg)
	if err != nil {
		return nil, err
	}

	return &application{
		cfg:     cfg,
		logger:  logg,
		catalog: catalog.NewService(readers, st, archive, logg),
	}, nil
}

// scanners adapts the catalog readers for the mentions feature.
func (a *application) scanners() []mentions.Scanner {
	readers := a.catalog.Readers()
	scanners := make([]mentions.Scanner, 0, len(readers))
	for _, r := range readers {
		scanners = append(scanners, r)
	}
	return scanners
}
