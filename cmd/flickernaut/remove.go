package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [id]",
	Aliases: []string{"rm"},
	Short:   "Remove an entry",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		session := openSession()
		defer session.Close()

		if err := session.Store.Remove(context.Background(), id); err != nil {
			fatal("Failed to remove entry", err)
		}
		fmt.Printf("Entry removed: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
