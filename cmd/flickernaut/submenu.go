package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var submenuCmd = &cobra.Command{
	Use:       "submenu [on|off]",
	Short:     "Show or set whether entries are grouped in a submenu",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		session := openSession()
		defer session.Close()

		if len(args) == 0 {
			enabled, err := session.Store.Submenu(ctx)
			if err != nil {
				fatal("Failed to read submenu flag", err)
			}
			fmt.Println(onOff(enabled))
			return
		}

		var enabled bool
		switch args[0] {
		case "on":
			enabled = true
		case "off":
		default:
			fatal("Invalid argument", fmt.Errorf("expected on or off, got %q", args[0]))
		}
		if err := session.Store.SetSubmenu(ctx, enabled); err != nil {
			fatal("Failed to set submenu flag", err)
		}
		fmt.Printf("Submenu %s\n", onOff(enabled))
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	rootCmd.AddCommand(submenuCmd)
}
