package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/internal/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Replace all portfolio content with the contents of a YAML file",
	Long: `seed clears every content table and repopulates it from the file in a
single transaction. Owner accounts are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := folio.LoadDataset(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, closeStore, err := openServices(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		// The command line is trusted like a signed-in owner.
		ctx := content.WithCapabilities(cmd.Context(), content.Capabilities{Owner: true, OwnerName: "cli"})
		if err := svc.ReplaceAll(ctx, ds); err != nil {
			return err
		}
		log.Info("seeded content",
			logger.String("file", args[0]),
			logger.Int("about", len(ds.About)),
			logger.Int("education", len(ds.Education)),
			logger.Int("experience", len(ds.Experience)),
			logger.Int("publications", len(ds.Publications)),
			logger.Int("news", len(ds.News)),
			logger.Int("events", len(ds.Events)),
		)
		cmd.Println("seed complete")
		return nil
	},
}
