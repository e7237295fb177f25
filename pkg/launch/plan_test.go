package launch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/flickernaut/pkg/core"
	"github.com/aretw0/flickernaut/pkg/launch"
)

// fakeResolver pretends the listed binaries and flatpaks are installed.
type fakeResolver struct {
	bins     map[string]bool
	flatpaks map[string]bool
	commands map[string][]string
}

func (r fakeResolver) LookPath(name string) (string, error) {
	if r.bins[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func (r fakeResolver) FlatpakInstalled(appID string) bool { return r.flatpaks[appID] }

func (r fakeResolver) DesktopCommand(desktopID string) ([]string, bool) {
	command, ok := r.commands[desktopID]
	return append([]string(nil), command...), ok
}

func planner(r fakeResolver) *launch.Planner {
	p := launch.NewPlanner(nil)
	p.Resolver = r
	return p
}

func TestPlan_Editor(t *testing.T) {
	rec := core.Record{ID: "1", Name: "Code", Enabled: true, Editor: &core.Editor{
		Native:    []string{"code"},
		Flatpak:   []string{"com.visualstudio.code"},
		Arguments: []string{"--new-window"},
	}}

	t.Run("Native And Flatpak", func(t *testing.T) {
		p := planner(fakeResolver{
			bins:     map[string]bool{"code": true, "flatpak": true},
			flatpaks: map[string]bool{"com.visualstudio.code": true},
		})
		got := p.Plan(rec, []string{"/src"})
		assert.Equal(t, []launch.Invocation{
			{ID: "program-1", Label: "Open in Code", Argv: []string{"/usr/bin/code", "--new-window", "/src"}},
			{ID: "program-1", Label: "Open in Code (Flatpak)", Argv: []string{"/usr/bin/flatpak", "run", "com.visualstudio.code", "--new-window", "/src"}},
		}, got)
	})

	t.Run("Flatpak Only", func(t *testing.T) {
		p := planner(fakeResolver{
			bins:     map[string]bool{"flatpak": true},
			flatpaks: map[string]bool{"com.visualstudio.code": true},
		})
		got := p.Plan(rec, []string{"/src"})
		if assert.Len(t, got, 1) {
			assert.Equal(t, "Open in Code", got[0].Label)
		}
	})

	t.Run("Nothing Installed", func(t *testing.T) {
		assert.Empty(t, planner(fakeResolver{}).Plan(rec, []string{"/src"}))
	})

	t.Run("Blank Tokens Ignored", func(t *testing.T) {
		blank := core.Record{ID: "2", Name: "Vim", Enabled: true, Editor: &core.Editor{
			Native:    core.NormalizeToList("vim"),
			Flatpak:   core.NormalizeToList(""),
			Arguments: core.NormalizeToList(""),
		}}
		got := planner(fakeResolver{bins: map[string]bool{"vim": true}}).Plan(blank, []string{"a.txt"})
		if assert.Len(t, got, 1) {
			assert.Equal(t, []string{"/usr/bin/vim", "a.txt"}, got[0].Argv)
		}
	})
}

func TestPlan_Application(t *testing.T) {
	rec := core.Record{ID: "Ab", Name: "Text Editor", Enabled: true, Application: &core.Application{
		AppID: "org.gnome.TextEditor.desktop",
	}}

	got := planner(fakeResolver{bins: map[string]bool{"gtk-launch": true}}).Plan(rec, []string{"a", "b"})
	assert.Equal(t, []launch.Invocation{{
		ID:    "app-Ab",
		Label: "Open with Text Editor",
		Argv:  []string{"/usr/bin/gtk-launch", "org.gnome.TextEditor", "a", "b"},
	}}, got)

	assert.Empty(t, planner(fakeResolver{}).Plan(rec, nil), "no launcher, no entry")

	t.Run("Desktop Command Without gtk-launch", func(t *testing.T) {
		r := fakeResolver{commands: map[string][]string{
			"org.gnome.TextEditor": {"/usr/bin/gnome-text-editor", "--new-window"},
		}}
		got := planner(r).Plan(rec, []string{"a", "b"})
		assert.Equal(t, []launch.Invocation{{
			ID:    "app-Ab",
			Label: "Open with Text Editor",
			Argv:  []string{"/usr/bin/gnome-text-editor", "--new-window", "a", "b"},
		}}, got)
	})

	t.Run("gtk-launch Preferred", func(t *testing.T) {
		r := fakeResolver{
			bins:     map[string]bool{"gtk-launch": true},
			commands: map[string][]string{"org.gnome.TextEditor": {"/usr/bin/gnome-text-editor"}},
		}
		got := planner(r).Plan(rec, []string{"a"})
		assert.Equal(t, []string{"/usr/bin/gtk-launch", "org.gnome.TextEditor", "a"}, got[0].Argv)
	})
}

func TestEligible(t *testing.T) {
	p := planner(fakeResolver{})

	folderEditor := core.Record{ID: "1", Name: "Code", Enabled: true, Editor: &core.Editor{}}
	fileEditor := core.Record{ID: "2", Name: "Vim", Enabled: true, Editor: &core.Editor{SupportsFiles: true}}
	disabled := core.Record{ID: "3", Name: "Off", Enabled: false, Editor: &core.Editor{SupportsFiles: true}}
	images := core.Record{ID: "4", Name: "Viewer", Enabled: true, Application: &core.Application{
		AppID: "org.viewer", MimeTypes: []string{"image/*"},
	}}
	multi := core.Record{ID: "5", Name: "Any", Enabled: true, Application: &core.Application{
		AppID: "org.any", MultipleFiles: true,
	}}

	tests := []struct {
		name string
		rec  core.Record
		sel  launch.Selection
		want bool
	}{
		{"Folder Editor On Folder", folderEditor, launch.Selection{Folders: 1}, true},
		{"Folder Editor On File", folderEditor, launch.Selection{Files: 1}, false},
		{"File Editor On File", fileEditor, launch.Selection{Files: 1}, true},
		{"Disabled", disabled, launch.Selection{Files: 1}, false},
		{"Mime Match", images, launch.Selection{Files: 1, MimeTypes: []string{"image/png"}}, true},
		{"Mime Mismatch", images, launch.Selection{Files: 1, MimeTypes: []string{"text/plain"}}, false},
		{"Single File App On Many", images, launch.Selection{Files: 2, MimeTypes: []string{"image/png", "image/gif"}}, false},
		{"Multi File App", multi, launch.Selection{Files: 3}, true},
		{"Multi File App On Many Folders", multi, launch.Selection{Folders: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Eligible(tt.rec, tt.sel))
		})
	}
}
