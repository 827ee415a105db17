package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app := folio.New(cfg, folio.WithLogger(log))
		defer app.Close()
		return app.Start(ctx)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		_, closeStore, err := openServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		closeStore()
		cmd.Printf("migrations applied (%s)\n", cfg.DBDriver)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the folio version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("folio %s\n", version)
	},
}
