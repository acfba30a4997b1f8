package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a catalog refresh",
	Long:  `Fetches every catalog page from the wiki and reconciles the store and snapshot archive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication()
		if err != nil {
			log.Fatalf("Failed to initialize application: %v", err)
		}
		logg := app.logger
		defer logg.Sync()

		if err := app.catalog.Refresh(context.Background()); err != nil {
			return err
		}

		for _, status := range app.catalog.Status() {
			logg.Info("Catalog refreshed",
				zap.String("entry_type", string(status.EntryType)),
				zap.Int("count", status.Count))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(refreshCmd)
}
