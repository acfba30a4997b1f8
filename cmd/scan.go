package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"mention-scanner/feature/mentions"

	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan [title]",
	Short: "Scan a title for entity mentions",
	Long:  `Seeds the catalog, scans the given title, and prints the detected mentions with the formatted reply.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApplication()
		if err != nil {
			log.Fatalf("Failed to initialize application: %v", err)
		}
		defer app.logger.Sync()

		ctx := context.Background()
		if err := app.catalog.Start(ctx); err != nil {
			return err
		}

		title := strings.Join(args, " ")
		svc := mentions.NewService(app.scanners(), app.logger)

		found := svc.ScanTitle(ctx, title)
		if len(found) == 0 {
			fmt.Println("No mentions found.")
			return nil
		}

		for _, m := range found {
			fmt.Printf("%s: %s (%.1f%%)\n", m.EntryType, m.Name, m.Confidence*100)
		}
		fmt.Println()
		fmt.Println(mentions.Reply(found))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)
}
