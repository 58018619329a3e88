package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/subsynclabs/subsync/internal/billing"
	"github.com/subsynclabs/subsync/internal/catalog"
	"github.com/subsynclabs/subsync/internal/clock"
	"github.com/subsynclabs/subsync/internal/config"
	"github.com/subsynclabs/subsync/internal/customer"
	"github.com/subsynclabs/subsync/internal/db"
	"github.com/subsynclabs/subsync/internal/metrics"
	"github.com/subsynclabs/subsync/internal/migration"
	"github.com/subsynclabs/subsync/internal/observability"
	"github.com/subsynclabs/subsync/internal/server"
	"github.com/subsynclabs/subsync/internal/subscription"
	"github.com/subsynclabs/subsync/internal/user"
	"github.com/subsynclabs/subsync/internal/webhook"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "subsync",
		Short:   "Billing provider subscription mirror",
		Version: readVersionFromEnv(),
	}
	root.AddCommand(newMigrateCmd(), newServeCmd(), newAllCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook and read API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			runServe()
			return nil
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run migrations, then start the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMigrate(); err != nil {
				return err
			}
			runServe()
			return nil
		},
	}
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		metrics.Module,
		billing.Module,
		catalog.Module,
		customer.Module,
		user.Module,
		subscription.Module,
		webhook.Module,
		server.Module,
	)
	app.Run()
}

func readVersionFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	return "dev"
}
