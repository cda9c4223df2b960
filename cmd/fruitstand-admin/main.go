// Command fruitstand-admin runs maintenance tasks against the order store.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/skadi15/fruitstand/config"
	"github.com/skadi15/fruitstand/internal/bootstrap"
	"github.com/skadi15/fruitstand/internal/service"
	"github.com/spf13/cobra"
)

const defaultMigrationTimeout = 5 * time.Minute

// app carries shared state for every subcommand. The open* hooks are
// replaced in tests.
type app struct {
	cfg    config.AppConfig
	logger *slog.Logger
	out    io.Writer

	openOrders func(ctx context.Context) (*service.OrderService, func() error, error)
	migrate    func(ctx context.Context) error
}

func main() {
	logger := bootstrap.InitLogger()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	a := newApp(cfg, logger, os.Stdout)
	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newApp(cfg config.AppConfig, logger *slog.Logger, out io.Writer) *app {
	a := &app{cfg: cfg, logger: logger, out: out}
	a.openOrders = a.openOrderService
	a.migrate = a.runMigrations
	return a
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fruitstand-admin",
		Short:         "Administer the fruitstand order service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)

	root.AddCommand(
		newMigrateCmd(a),
		newOrdersCmd(a),
		newQuoteCmd(a),
	)
	return root
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), defaultMigrationTimeout)
			defer cancel()
			if err := a.migrate(ctx); err != nil {
				return err
			}
			_, err := fmt.Fprintln(a.out, "migrations applied")
			return err
		},
	}
}

func (a *app) runMigrations(ctx context.Context) (err error) {
	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{DBConfig: a.cfg.Postgres, Logger: a.logger})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close database: %w", cerr))
		}
	}()
	return bootstrap.RunMigrations(ctx, db, a.logger)
}

// openOrderService wires the order service against the configured backends.
func (a *app) openOrderService(ctx context.Context) (*service.OrderService, func() error, error) {
	if a.cfg.Storage.Backend != config.StorageBackendPostgres {
		a.logger.Warn("using in-memory storage; orders will not outlive this command",
			"storage_backend", a.cfg.Storage.Backend)
	}

	var (
		db          *sql.DB
		redisClient redis.UniversalClient
		err         error
	)
	dbCfg := bootstrap.DatabaseConfig{DBConfig: a.cfg.Postgres, RedisConfig: a.cfg.Redis, Logger: a.logger}

	if a.cfg.Storage.Backend == config.StorageBackendPostgres {
		if db, err = bootstrap.ConnectDB(ctx, dbCfg); err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
	}
	if a.cfg.Cache.Enabled {
		if redisClient, err = bootstrap.ConnectRedis(ctx, dbCfg); err != nil {
			return nil, nil, errors.Join(fmt.Errorf("connect redis: %w", err), closeDB(db))
		}
	}

	closeAll := func() error {
		var errs []error
		if redisClient != nil {
			errs = append(errs, redisClient.Close())
		}
		errs = append(errs, closeDB(db))
		return errors.Join(errs...)
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &a.cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      a.logger,
	})
	if err != nil {
		return nil, nil, errors.Join(err, closeAll())
	}

	return services.Orders, func() error {
		return errors.Join(services.Close(), closeAll())
	}, nil
}

func closeDB(db *sql.DB) error {
	if db == nil {
		return nil
	}
	return db.Close()
}
