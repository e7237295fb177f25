package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/flickernaut/pkg/core"
)

// recordFlags holds the raw text of every editable field, as typed by the user.
type recordFlags struct {
	name     string
	disabled bool

	native    string
	flatpak   string
	arguments string
	files     bool

	appID           string
	icon            string
	packageType     string
	pinned          bool
	multipleFiles   bool
	multipleFolders bool
	mimeTypes       string
}

func (f *recordFlags) bindCommon(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Label shown in the menu")
	cmd.Flags().BoolVar(&f.disabled, "disabled", false, "Store the entry without offering it")
}

func (f *recordFlags) bindEditor(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.native, "native", "", "Native command, e.g. \"code --new-window\"")
	cmd.Flags().StringVar(&f.flatpak, "flatpak", "", "Flatpak application id")
	cmd.Flags().StringVar(&f.arguments, "args", "", "Extra arguments placed before the paths")
	cmd.Flags().BoolVar(&f.files, "files", false, "Also offer the editor for files, not only folders")
}

func (f *recordFlags) bindApplication(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.appID, "app-id", "", "Desktop application id, e.g. org.gnome.TextEditor.desktop")
	cmd.Flags().StringVar(&f.icon, "icon", "", "Icon name")
	cmd.Flags().StringVar(&f.packageType, "package-type", string(core.PackageNative), "Native, Flatpak or AppImage")
	cmd.Flags().BoolVar(&f.pinned, "pinned", false, "Keep the entry at the top of the list")
	cmd.Flags().BoolVar(&f.multipleFiles, "multiple-files", false, "Offer the entry for multi-file selections")
	cmd.Flags().BoolVar(&f.multipleFolders, "multiple-folders", false, "Offer the entry for multi-folder selections")
	cmd.Flags().StringVar(&f.mimeTypes, "mime", "", "Space separated mime patterns, e.g. \"text/* image/png\"")
}

func parsePackageType(s string) (core.PackageType, error) {
	for _, pt := range []core.PackageType{core.PackageNative, core.PackageFlatpak, core.PackageAppImage} {
		if strings.EqualFold(strings.TrimSpace(s), string(pt)) {
			return pt, nil
		}
	}
	return "", fmt.Errorf("unknown package type %q", s)
}

// check validates the text of each changed field against the stored
// records, the way the preferences rows do before anything is persisted.
func check(ctx context.Context, store *core.Store, ownerID string, values map[core.Field]string) error {
	for field, value := range values {
		res := store.Validate(ctx, value, ownerID, field)
		switch {
		case res.IsDuplicate:
			return fmt.Errorf("%s %q is already used by another entry", field, core.NormalizeScalar(value))
		case !res.IsValid:
			return fmt.Errorf("%s must not be empty", field)
		}
	}
	return nil
}
