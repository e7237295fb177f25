// Package launch turns stored records into the commands a file-manager
// menu runs, and restarts the file manager when settings change.
package launch

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/flickernaut/pkg/core"
)

// Selection describes what the user right-clicked.
type Selection struct {
	Files     int
	Folders   int
	MimeTypes []string // One per selected file.
}

// Invocation is one runnable menu entry.
type Invocation struct {
	ID    string
	Label string
	Argv  []string
}

// Resolver locates installed programs.
type Resolver interface {
	LookPath(name string) (string, error)
	FlatpakInstalled(appID string) bool
	// DesktopCommand returns the command line of a desktop entry, if installed.
	DesktopCommand(desktopID string) ([]string, bool)
}

// SystemResolver resolves against $PATH, the flatpak export directories
// and the XDG application directories.
type SystemResolver struct {
	// ExportDirs overrides the flatpak exports/bin directories searched.
	ExportDirs []string
	// ApplicationDirs overrides the directories searched for desktop entries.
	ApplicationDirs []string
}

func (SystemResolver) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r SystemResolver) FlatpakInstalled(appID string) bool {
	if _, err := exec.LookPath("flatpak"); err != nil {
		return false
	}
	dirs := r.ExportDirs
	if dirs == nil {
		dirs = defaultExportDirs()
	}
	for _, dir := range dirs {
		if _, err := os.Stat(filepath.Join(dir, appID)); err == nil {
			return true
		}
	}
	return false
}

func defaultExportDirs() []string {
	dirs := []string{"/var/lib/flatpak/exports/bin"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append([]string{filepath.Join(home, ".local", "share", "flatpak", "exports", "bin")}, dirs...)
	}
	return dirs
}

// Planner builds invocations for records.
type Planner struct {
	Resolver Resolver
	Logger   *slog.Logger
}

// NewPlanner creates a Planner using the system resolver.
func NewPlanner(logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Planner{Resolver: SystemResolver{}, Logger: logger}
}

// Eligible reports whether rec should be offered for sel.
func (p *Planner) Eligible(rec core.Record, sel Selection) bool {
	if !rec.Enabled {
		return false
	}
	switch {
	case rec.Editor != nil:
		return sel.Files == 0 || rec.Editor.SupportsFiles
	case rec.Application != nil:
		app := rec.Application
		if sel.Files > 1 && !app.MultipleFiles {
			return false
		}
		if sel.Folders > 1 && !app.MultipleFolders {
			return false
		}
		return p.mimeAllowed(app.MimeTypes, sel.MimeTypes)
	default:
		return false
	}
}

// mimeAllowed reports whether every selected mime type matches one of the
// configured patterns. No configured patterns allows everything.
func (p *Planner) mimeAllowed(patterns, mimes []string) bool {
	patterns = nonEmpty(patterns)
	if len(patterns) == 0 {
		return true
	}
	for _, mime := range mimes {
		matched := false
		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, mime)
			if err != nil {
				p.Logger.Warn("invalid mime pattern", "pattern", pattern, "error", err)
				continue
			}
			if ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Plan returns the invocations rec offers for paths. Launch targets that
// are not installed are left out.
func (p *Planner) Plan(rec core.Record, paths []string) []Invocation {
	switch {
	case rec.Editor != nil:
		return p.planEditor(rec, paths)
	case rec.Application != nil:
		return p.planApplication(rec, paths)
	default:
		return nil
	}
}

func (p *Planner) planEditor(rec core.Record, paths []string) []Invocation {
	type target struct {
		kind string
		argv []string
	}
	var targets []target

	if native := nonEmpty(rec.Editor.Native); len(native) > 0 {
		if bin, err := p.Resolver.LookPath(native[0]); err == nil {
			targets = append(targets, target{kind: "", argv: append([]string{bin}, native[1:]...)})
		} else {
			p.Logger.Debug("native command not installed", "id", rec.ID, "command", native[0])
		}
	}
	if flatpak := nonEmpty(rec.Editor.Flatpak); len(flatpak) > 0 {
		if p.Resolver.FlatpakInstalled(flatpak[0]) {
			bin, err := p.Resolver.LookPath("flatpak")
			if err != nil {
				bin = "flatpak"
			}
			targets = append(targets, target{kind: "Flatpak", argv: append([]string{bin, "run"}, flatpak...)})
		} else {
			p.Logger.Debug("flatpak not installed", "id", rec.ID, "app_id", flatpak[0])
		}
	}

	out := make([]Invocation, 0, len(targets))
	for _, t := range targets {
		label := fmt.Sprintf("Open in %s", rec.Name)
		if len(targets) > 1 && t.kind != "" {
			label += fmt.Sprintf(" (%s)", t.kind)
		}
		argv := append(t.argv, nonEmpty(rec.Editor.Arguments)...)
		out = append(out, Invocation{
			ID:    "program-" + rec.ID,
			Label: label,
			Argv:  append(argv, paths...),
		})
	}
	return out
}

// planApplication prefers gtk-launch and falls back to the command line
// of the desktop entry when gtk-launch is not installed.
func (p *Planner) planApplication(rec core.Record, paths []string) []Invocation {
	desktopID := strings.TrimSuffix(rec.Application.AppID, ".desktop")

	var argv []string
	if launcher, err := p.Resolver.LookPath("gtk-launch"); err == nil {
		argv = []string{launcher, desktopID}
	} else if command, ok := p.Resolver.DesktopCommand(desktopID); ok {
		p.Logger.Debug("gtk-launch not found, using desktop command line", "id", rec.ID, "command", command)
		argv = command
	} else {
		p.Logger.Warn("no way to launch application", "id", rec.ID, "app_id", rec.Application.AppID)
		return nil
	}

	return []Invocation{{
		ID:    "app-" + rec.ID,
		Label: fmt.Sprintf("Open with %s", rec.Name),
		Argv:  append(argv, paths...),
	}}
}

// nonEmpty drops the empty tokens NormalizeToList produces for blank input.
func nonEmpty(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
