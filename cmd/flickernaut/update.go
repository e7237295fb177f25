package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut/pkg/core"
)

var (
	updateFlags  recordFlags
	updateEnable bool
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change fields of an existing entry",
	Long: `Update rewrites only the fields whose flags are given. Editor flags apply
to editors and application flags to applications.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		f := updateFlags
		changed := cmd.Flags().Changed
		ctx := context.Background()

		session := openSession()
		defer session.Close()

		rec, ok, err := session.Store.Get(ctx, id)
		if err != nil {
			fatal("Failed to load records", err)
		}
		if !ok {
			fatal("Failed to update entry", fmt.Errorf("no entry with id %s", id))
		}

		toCheck := make(map[core.Field]string)
		if changed("name") {
			toCheck[core.FieldName] = f.name
			rec.Name = core.NormalizeScalar(f.name)
		}
		if changed("enable") {
			rec.Enabled = updateEnable
		}

		switch rec.Kind() {
		case core.KindEditor:
			if changed("native") {
				toCheck[core.FieldNative] = f.native
				rec.Editor.Native = core.NormalizeToList(f.native)
			}
			if changed("flatpak") {
				toCheck[core.FieldFlatpak] = f.flatpak
				rec.Editor.Flatpak = core.NormalizeToList(f.flatpak)
			}
			if changed("args") {
				rec.Editor.Arguments = core.NormalizeToList(f.arguments)
			}
			if changed("files") {
				rec.Editor.SupportsFiles = f.files
			}
		case core.KindApplication:
			if changed("icon") {
				rec.Application.Icon = core.NormalizeScalar(f.icon)
			}
			if changed("package-type") {
				pt, err := parsePackageType(f.packageType)
				if err != nil {
					fatal("Invalid application", err)
				}
				rec.Application.PackageType = pt
			}
			if changed("pinned") {
				rec.Application.Pinned = f.pinned
			}
			if changed("multiple-files") {
				rec.Application.MultipleFiles = f.multipleFiles
			}
			if changed("multiple-folders") {
				rec.Application.MultipleFolders = f.multipleFolders
			}
			if changed("mime") {
				rec.Application.MimeTypes = core.NormalizeToList(f.mimeTypes)
			}
		}

		if err := check(ctx, session.Store, id, toCheck); err != nil {
			fatal("Invalid entry", err)
		}

		updated, err := session.Store.Update(ctx, rec)
		if err != nil {
			fatal("Failed to update entry", err)
		}
		if !updated {
			fatal("Failed to update entry", fmt.Errorf("entry %s disappeared", id))
		}
		fmt.Printf("Entry updated: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateFlags.name, "name", "", "Label shown in the menu")
	updateCmd.Flags().BoolVar(&updateEnable, "enable", true, "Offer the entry in the menu")
	updateFlags.bindEditor(updateCmd)

	// bindApplication also defines the app id, which never changes after creation.
	updateCmd.Flags().StringVar(&updateFlags.icon, "icon", "", "Icon name")
	updateCmd.Flags().StringVar(&updateFlags.packageType, "package-type", "", "Native, Flatpak or AppImage")
	updateCmd.Flags().BoolVar(&updateFlags.pinned, "pinned", false, "Keep the entry at the top of the list")
	updateCmd.Flags().BoolVar(&updateFlags.multipleFiles, "multiple-files", false, "Offer the entry for multi-file selections")
	updateCmd.Flags().BoolVar(&updateFlags.multipleFolders, "multiple-folders", false, "Offer the entry for multi-folder selections")
	updateCmd.Flags().StringVar(&updateFlags.mimeTypes, "mime", "", "Space separated mime patterns")
}
