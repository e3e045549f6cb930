package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"scaffold-wizard/core/config"
	"scaffold-wizard/core/logger"

	"github.com/spf13/cobra"
)

var detectJSON bool

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect [entityId]",
	Short: "Detect schema/manifest conflicts for an entity",
	Long: `Compares the entity's current table structure against its manifest
metadata and reports every discrepancy with a suggested resolution.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetect(cmd.Context(), args[0])
	},
}

func init() {
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Output the conflict report as JSON")
	RootCmd.AddCommand(detectCmd)
}

func runDetect(ctx context.Context, entityID string) error {
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

	result := svc.DetectConflicts(ctx, entityID)
	if !result.Success {
		for _, msg := range result.Errors {
			fmt.Fprintln(os.Stderr, msg)
		}
		return fmt.Errorf("conflict detection failed for %s", entityID)
	}

	if detectJSON {
		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(payload))
		return nil
	}

	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	if len(result.Conflicts) == 0 {
		fmt.Printf("No conflicts for %s.\n", entityID)
		return nil
	}

	fmt.Printf("%d conflict(s) for %s:\n\n", len(result.Conflicts), entityID)
	for _, conflict := range result.Conflicts {
		fmt.Printf("  [%s] %s\n", conflict.Kind, conflict.Field)
		fmt.Printf("      %s\n", conflict.Description)
		if conflict.DatabaseValue != nil {
			fmt.Printf("      database: %s\n", *conflict.DatabaseValue)
		}
		if conflict.ManifestValue != nil {
			fmt.Printf("      manifest: %s\n", *conflict.ManifestValue)
		}
		fmt.Printf("      suggested: %s (key %s)\n\n", conflict.Suggested, conflict.Key())
	}
	return nil
}
