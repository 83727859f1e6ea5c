package server

import (
	"context"
	"fmt"

	"lrbook/internal/config"
	"lrbook/internal/database"
	"lrbook/internal/repository"
	"lrbook/internal/repository/mongostore"
)

// OpenStorage connects to the backend named by the DATABASE_URL scheme and
// prepares its schema or indexes.
func OpenStorage(ctx context.Context, cfg config.DatabaseConfig) (*repository.Set, error) {
	if database.DetectKind(cfg.URL) == database.KindMongo {
		client, err := database.ConnectMongo(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := mongostore.EnsureIndexes(ctx, client, cfg.Name); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return mongostore.NewSet(client, cfg.Name), nil
	}

	db, err := database.Connect(cfg.URL, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if database.DetectKind(cfg.URL) != database.KindSQLite {
		if err := database.ConfigurePool(db); err != nil {
			return nil, err
		}
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return repository.NewSet(db), nil
}
