package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut"
	"github.com/aretw0/flickernaut/pkg/core"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flickernaut",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flickernaut version %s (settings schema %d)\n", strings.TrimSpace(flickernaut.Version), core.SchemaVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
