package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"scaffold-wizard/core/config"
	"scaffold-wizard/core/logger"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [entityId]",
	Short: "List saved configurations for an entity",
	Long:  `Lists every saved configuration for an entity, newest first, with identifier and content hash.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)
}

func runHistory(ctx context.Context, entityID string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	svc, err := buildService(cfg, logg)
	if err != nil {
		return err
	}

	result := svc.History(ctx, entityID)
	if !result.Success {
		printMessages(result.Errors)
		return fmt.Errorf("failed to read history for %s", entityID)
	}

	if len(result.Entries) == 0 {
		fmt.Printf("No saved configurations for %s.\n", entityID)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGENERATED\tHASH")
	for _, entry := range result.Entries {
		fmt.Fprintf(w, "%s\t%s\t%.12s...\n",
			entry.ID, entry.GeneratedAt.Format("2006-01-02 15:04:05"), entry.Hash)
	}
	return w.Flush()
}
