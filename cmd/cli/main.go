package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rbenali/garrison-duty/cmd/cli/commands"
	"github.com/rbenali/garrison-duty/internal/config"
	"github.com/rbenali/garrison-duty/pkg/db"
	"github.com/rbenali/garrison-duty/pkg/postgres"
	"github.com/rbenali/garrison-duty/pkg/sqlite"
	"github.com/rbenali/garrison-duty/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "garrison",
		Short: "Garrison duty roster CLI",
		Long:  `A CLI tool for generating, reviewing and locking daily duty rosters.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app == nil {
				return
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if app.Store != nil {
				app.Store.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to garrison_config.yaml (default: search cwd and home)")
	rootCmd.MarkPersistentFlagRequired("env")

	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.ShowCmd(app))
	rootCmd.AddCommand(commands.CandidatesCmd(app))
	rootCmd.AddCommand(commands.ReplaceCmd(app))
	rootCmd.AddCommand(commands.LockCmd(app))
	rootCmd.AddCommand(commands.UnlockCmd(app))
	rootCmd.AddCommand(commands.SeedCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initApp loads config, builds the logger and opens the configured store
func initApp() error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	app.Cfg = cfg
	app.Catalog = catalog
	app.Store = store
	app.Logger = logger
	app.Ctx = ctx
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (db.Database, error) {
	switch cfg.Store.Backend {
	case "memory":
		return db.NewMemoryDB(), nil
	case "sqlite":
		store, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return store, nil
	case "postgres":
		store, err := postgres.New(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
