package main

import (
	"context"
	"fmt"

	"github.com/example/etaflow/internal/common"
	"github.com/example/etaflow/internal/config"
	"github.com/example/etaflow/internal/storage"
	"github.com/spf13/viper"
)

// openStorage opens the configured database and brings the schema up to date.
// Callers own the Close.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetString("database.path"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError("could not open the order database", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate storage: %w", err)
	}

	return store, nil
}
