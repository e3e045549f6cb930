package cmd

import (
	"context"
	"fmt"
	"os"

	"scaffold-wizard/core/config"
	"scaffold-wizard/core/logger"
	"scaffold-wizard/core/wizard"
	feature "scaffold-wizard/feature/wizard"

	"github.com/spf13/cobra"
)

var (
	generateConfigID string
	generateSave     bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [entityId]",
	Short: "Generate CRUD artifacts for an entity",
	Long: `Runs the full generation flow for an entity: loads a saved
configuration (or synthesizes defaults), renders all artifacts and
packages them into a ZIP.

Examples:
  # Generate from synthesized defaults
  generate Orders

  # Generate from a previously saved configuration
  generate Orders --config 7f8b9c0d-...

  # Synthesize defaults, persist them, then generate
  generate Orders --save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.Context(), args[0])
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateConfigID, "config", "", "Identifier of a saved configuration to generate from")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Persist the configuration before generating")
	RootCmd.AddCommand(generateCmd)
}

func runGenerate(ctx context.Context, entityID string) error {
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

	wizardCfg, err := resolveConfig(ctx, svc, entityID)
	if err != nil {
		return err
	}

	if generateSave {
		saved := svc.SaveConfiguration(ctx, wizardCfg)
		if !saved.Success {
			printMessages(saved.Errors)
			return fmt.Errorf("failed to save configuration for %s", entityID)
		}
		fmt.Printf("Configuration saved as %s (hash %s)\n", saved.ID, saved.Hash)
	}

	result := svc.Generate(ctx, wizardCfg)
	printMessages(result.Warnings)

	if result.Generation != nil {
		for _, file := range result.Generation.Files {
			marker := " "
			if file.Customizable {
				marker = "*"
			}
			fmt.Printf("  %s %s\n", marker, file.RelativePath)
		}
	}

	if !result.Success {
		printMessages(result.Errors)
		if result.Generation != nil {
			for _, conflict := range result.Generation.UnresolvedConflicts {
				fmt.Fprintf(os.Stderr, "unresolved: [%s] %s\n", conflict.Kind, conflict.Field)
			}
		}
		return fmt.Errorf("generation failed for %s", entityID)
	}

	fmt.Printf("\nArchive written to %s\n", result.ArchivePath)
	if result.ArchiveKey != "" {
		fmt.Printf("Archive uploaded as %s\n", result.ArchiveKey)
	}
	return nil
}

// resolveConfig loads the named saved configuration or synthesizes
// defaults from the current schema and manifest.
func resolveConfig(ctx context.Context, svc *feature.Service, entityID string) (*wizard.Config, error) {
	if generateConfigID != "" {
		loaded := svc.LoadConfiguration(ctx, generateConfigID)
		if !loaded.Success {
			printMessages(loaded.Errors)
			return nil, fmt.Errorf("failed to load configuration %s", generateConfigID)
		}
		return loaded.Config, nil
	}

	initialized := svc.Initialize(ctx, entityID)
	if !initialized.Success {
		printMessages(initialized.Errors)
		return nil, fmt.Errorf("failed to initialize wizard for %s", entityID)
	}
	printMessages(initialized.Warnings)
	return initialized.Config, nil
}

func printMessages(messages []string) {
	for _, msg := range messages {
		fmt.Fprintln(os.Stderr, msg)
	}
}
