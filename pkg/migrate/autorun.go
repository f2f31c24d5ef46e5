package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/keyhold-backend/pkg/config"
	"github.com/angelmondragon/keyhold-backend/pkg/db"
	"github.com/angelmondragon/keyhold-backend/pkg/logger"
)

// MaybeAutoRun applies the embedded migrations when the auto-migrate flag is
// set. Production deployments run cmd/migrate instead.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dialect": client.Dialect()})
	logg.Info(ctx, "running goose migrations (auto-run)")

	if err := Run(ctx, sqlDB, client.Dialect(), "", "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
