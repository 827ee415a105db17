// Command folio serves and administers a portfolio site.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configPath string
	log        logger.Logger = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - a single-author academic portfolio built with Go, Echo and templ",
	Long: `folio serves a personal academic portfolio: profile, about, education,
experience, publications and news, editable in place by the signed-in owner.

Configuration is read from an optional YAML file (--config) and FOLIO_*
environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		l, err := cfg.NewLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("FOLIO_CONFIG"), "path to a YAML config file")

	ownerCmd.AddCommand(ownerAddCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, ownerCmd, tokenCmd, snapshotCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (folio.SiteConfig, error) {
	return folio.LoadConfig(configPath)
}

// openServices opens (and migrates) the configured store.
func openServices(ctx context.Context, cfg folio.SiteConfig) (*folio.Services, func(), error) {
	store, err := folio.NewStore(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return folio.NewServices(store, folio.ContextGate), func() { _ = store.Close() }, nil
}
