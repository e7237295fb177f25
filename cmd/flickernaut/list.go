package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut/pkg/core"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured editors and applications",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		session := openSession()
		defer session.Close()

		records, err := session.Store.Load(context.Background())
		if err != nil {
			fatal("Failed to load records", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(records); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, rec := range records {
			state := "on"
			if !rec.Enabled {
				state = "off"
			}
			fmt.Printf("%s\t%s\t%s\t%s\t%s\n", rec.ID, rec.Kind(), state, rec.Name, target(rec))
		}
	},
}

// target summarizes what a record launches.
func target(rec core.Record) string {
	switch {
	case rec.Editor != nil:
		if native := core.ListToDisplay(rec.Editor.Native); native != "" {
			return native
		}
		return "flatpak:" + core.ListToDisplay(rec.Editor.Flatpak)
	case rec.Application != nil:
		return rec.Application.AppID
	}
	return ""
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
