package launch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
)

// execPlaceholders are the field codes a desktop Exec line may carry.
// The menu appends the selected paths itself, so they are dropped.
var execPlaceholders = map[string]bool{
	"@@u": true,
	"@@":  true,
	"@":   true,
}

// DesktopCommand returns the Exec command line of the desktop entry
// desktopID, with field codes removed and the program resolved on $PATH.
func (r SystemResolver) DesktopCommand(desktopID string) ([]string, bool) {
	if !strings.HasSuffix(desktopID, ".desktop") {
		desktopID += ".desktop"
	}

	dirs := r.ApplicationDirs
	if dirs == nil {
		dirs = defaultApplicationDirs()
	}
	for _, dir := range dirs {
		data, err := os.ReadFile(filepath.Join(dir, desktopID))
		if err != nil {
			continue
		}
		argv, err := execArgv(desktopExec(string(data)))
		if err != nil || len(argv) == 0 {
			return nil, false
		}
		bin, err := r.LookPath(filepath.Base(argv[0]))
		if err != nil {
			return nil, false
		}
		argv[0] = bin
		return argv, true
	}
	return nil, false
}

// desktopExec extracts the Exec key of the [Desktop Entry] group.
func desktopExec(data string) string {
	inDesktopEntry := false
	for line := range strings.SplitSeq(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		if len(line) > 2 && line[0] == '[' && line[len(line)-1] == ']' {
			inDesktopEntry = line == "[Desktop Entry]"
			continue
		}
		if !inDesktopEntry {
			continue
		}
		if key, value, ok := strings.Cut(line, "="); ok && strings.TrimSpace(key) == "Exec" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// execArgv splits an Exec value respecting quotes and drops field codes.
func execArgv(exec string) ([]string, error) {
	tokens, err := shlex.Split(exec)
	if err != nil {
		return nil, fmt.Errorf("invalid Exec line %q: %w", exec, err)
	}
	argv := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if execPlaceholders[t] || strings.HasPrefix(t, "%") {
			continue
		}
		argv = append(argv, t)
	}
	return argv, nil
}

func defaultApplicationDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs,
			filepath.Join(dataHome, "applications"),
			filepath.Join(dataHome, "flatpak", "exports", "share", "applications"),
		)
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range filepath.SplitList(dataDirs) {
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}
	return append(dirs, "/var/lib/flatpak/exports/share/applications")
}
