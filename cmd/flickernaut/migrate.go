package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut"
	"github.com/aretw0/flickernaut/pkg/core"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade the settings file to the current schema",
	Long: `Migrate resets the deprecated editors list and records the current schema
version. Opening the settings for writing always migrates, so this command
mostly reports what happened. With --dry-run the file is only inspected.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Read-only sessions never migrate.
		before := openSession(flickernaut.WithReadOnly(true))
		from, err := version(ctx, before.Settings)
		before.Close()
		if err != nil {
			fatal("Failed to read settings version", err)
		}

		if from >= core.SchemaVersion {
			fmt.Printf("Settings already at version %d\n", from)
			return
		}
		if migrateDryRun {
			fmt.Printf("Settings at version %d would be migrated to %d\n", from, core.SchemaVersion)
			return
		}

		session := openSession()
		defer session.Close()
		to, err := version(ctx, session.Settings)
		if err != nil {
			fatal("Failed to read settings version", err)
		}
		fmt.Printf("Settings migrated from version %d to %d\n", from, to)
	},
}

func version(ctx context.Context, settings core.Settings) (uint32, error) {
	v, err := settings.Value(ctx, core.KeySettingsVersion)
	if err != nil {
		return 0, err
	}
	n, ok := v.(uint32)
	if !ok {
		return 0, fmt.Errorf("%w: %T", core.ErrTypeMismatch, v)
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Report without writing")
}
