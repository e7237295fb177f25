package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut/pkg/launch"
)

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the file manager so it picks up the settings",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := launch.NewCommandRestarter(cfg.RestartCommand, slog.Default())
		if err := r.Restart(context.Background()); err != nil {
			fatal("Failed to restart", err)
		}
		fmt.Printf("Ran %v\n", r.Command)
	},
}

func init() {
	rootCmd.AddCommand(restartCmd)
}
