package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut/pkg/core"
)

var validateOwner string

var validateCmd = &cobra.Command{
	Use:   "validate [field] [value]",
	Short: "Check a field value against the stored entries",
	Long: `Validate reports whether value would be accepted for field. Fields are
name, native, flatpak, appId, arguments and mimeTypes. Use --owner to ignore
the entry being edited.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		field := core.Field(args[0])
		session := openSession()
		defer session.Close()

		res := session.Store.Validate(context.Background(), args[1], validateOwner, field)
		switch {
		case res.IsDuplicate:
			fmt.Println("duplicate")
		case res.IsValid && res.IsEmpty:
			fmt.Println("empty")
		case res.IsValid:
			fmt.Println("valid")
		default:
			fmt.Println("invalid")
		}
		if !res.IsValid {
			fatal("Validation failed", fmt.Errorf("%s rejected", field))
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateOwner, "owner", "", "Id of the entry being edited")
}
