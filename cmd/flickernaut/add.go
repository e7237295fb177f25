package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut/pkg/core"
)

var addFlags recordFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an editor or an application",
}

var addEditorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Add a manually configured editor",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		f := addFlags
		ctx := context.Background()
		session := openSession()
		defer session.Close()

		id, err := session.Store.GenerateID(ctx)
		if err != nil {
			fatal("Failed to generate id", err)
		}
		if f.native == "" && f.flatpak == "" {
			fatal("Invalid editor", fmt.Errorf("one of --native or --flatpak is required"))
		}
		if err := check(ctx, session.Store, id, map[core.Field]string{
			core.FieldName:    f.name,
			core.FieldNative:  f.native,
			core.FieldFlatpak: f.flatpak,
		}); err != nil {
			fatal("Invalid editor", err)
		}

		rec := core.Record{
			ID:      id,
			Name:    core.NormalizeScalar(f.name),
			Enabled: !f.disabled,
			Editor: &core.Editor{
				Native:        core.NormalizeToList(f.native),
				Flatpak:       core.NormalizeToList(f.flatpak),
				Arguments:     core.NormalizeToList(f.arguments),
				SupportsFiles: f.files,
			},
		}
		added, err := session.Store.Add(ctx, rec)
		if err != nil {
			fatal("Failed to add editor", err)
		}
		if !added {
			fatal("Failed to add editor", fmt.Errorf("id %s is already taken", id))
		}
		fmt.Printf("Editor added: %s\n", id)
	},
}

var addApplicationCmd = &cobra.Command{
	Use:   "application",
	Short: "Add an installed desktop application",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		f := addFlags
		ctx := context.Background()
		session := openSession()
		defer session.Close()

		pt, err := parsePackageType(f.packageType)
		if err != nil {
			fatal("Invalid application", err)
		}
		id, err := session.Store.GenerateID(ctx)
		if err != nil {
			fatal("Failed to generate id", err)
		}
		if err := check(ctx, session.Store, id, map[core.Field]string{
			core.FieldName: f.name,
		}); err != nil {
			fatal("Invalid application", err)
		}

		rec := core.Record{
			ID:      id,
			Name:    core.NormalizeScalar(f.name),
			Enabled: !f.disabled,
			Application: &core.Application{
				AppID:           core.NormalizeScalar(f.appID),
				Icon:            core.NormalizeScalar(f.icon),
				PackageType:     pt,
				Pinned:          f.pinned,
				MultipleFiles:   f.multipleFiles,
				MultipleFolders: f.multipleFolders,
				MimeTypes:       core.NormalizeToList(f.mimeTypes),
			},
		}
		added, err := session.Store.Add(ctx, rec)
		if err != nil {
			fatal("Failed to add application", err)
		}
		if !added {
			fmt.Printf("Application %s is already configured.\n", rec.AppID())
			return
		}
		fmt.Printf("Application added: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.AddCommand(addEditorCmd, addApplicationCmd)

	addFlags.bindCommon(addEditorCmd)
	addFlags.bindEditor(addEditorCmd)
	addEditorCmd.MarkFlagRequired("name")

	addFlags.bindCommon(addApplicationCmd)
	addFlags.bindApplication(addApplicationCmd)
	addApplicationCmd.MarkFlagRequired("name")
	addApplicationCmd.MarkFlagRequired("app-id")
}
