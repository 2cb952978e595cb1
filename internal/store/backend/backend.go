// Package backend opens the document store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/joao-fontenele/logistics-erp-api/internal/config"
	"github.com/joao-fontenele/logistics-erp-api/internal/store"
	"github.com/joao-fontenele/logistics-erp-api/internal/store/memory"
	"github.com/joao-fontenele/logistics-erp-api/internal/store/mongo"
	"github.com/joao-fontenele/logistics-erp-api/internal/store/postgres"
	"github.com/joao-fontenele/logistics-erp-api/internal/telemetry"
)

const defaultName = "logistics"

// Open connects to the configured store. A store that cannot be reached is
// not fatal: Open logs the failure and returns a nil store so the service can
// still start and report it.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	name := cfg.DatabaseName
	if name == "" {
		name = defaultName
	}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Info("using in-memory document store", "database", name)
		return memory.New(name), noop, nil

	case config.DriverMongo:
		s, err := mongo.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			logger.Error("failed to connect to mongodb", "error", err)
			return nil, noop, nil
		}
		logger.Info("connected to mongodb", "database", s.Name())
		return s, s.Close, nil

	case config.DriverPostgres:
		db, err := telemetry.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			return nil, noop, nil
		}
		logger.Info("connected to postgres", "database", name)
		return postgres.New(db, name), func(context.Context) error { return db.Close() }, nil
	}

	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
