// Package flickernaut is the Composition Root for the Flickernaut settings core.
//
// Flickernaut keeps a user-editable list of "open with" entries for a file
// manager context menu. Each entry is either an editor (a native command or a
// Flatpak id, plus arguments) or a desktop application (a .desktop id with
// pinning and mime filters). The entries are stored as JSON blobs inside a
// string-list setting, so a single corrupt entry never hides the others.
//
// The package wires the core (pkg/core) to a settings backend (pkg/adapters)
// and to the restart notifier (pkg/notify) using the Hexagonal Architecture
// pattern. Schema migration runs when a Session is opened.
//
// Usage:
//
//	session, err := flickernaut.Open("~/.config/flickernaut",
//		flickernaut.WithLogger(logger),
//		flickernaut.WithWatch(true),
//	)
//	if err != nil {
//		return err
//	}
//	defer session.Close()
//
//	id, _ := session.Store.GenerateID(ctx)
//	ok, err := session.Store.Add(ctx, flickernaut.Record{
//		ID: id, Name: "Code", Enabled: true,
//		Editor: &core.Editor{Native: []string{"code"}},
//	})
package flickernaut
