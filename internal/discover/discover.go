package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/suykerbuyk/vibe-digest/internal/archive"
)

// Project is one subdirectory of the log directory.
type Project struct {
	Dir  string   // directory path under the log dir
	Name string   // readable name, e.g. "~/alice/src/app"
	Logs []string // JSONL log paths in name order
}

// Projects lists every project directory under logDir that holds at least
// one log, in directory name order. A plain log shadows its compressed
// twin so the same session is never read twice.
func Projects(fs afero.Fs, logDir string) ([]Project, error) {
	entries, err := afero.ReadDir(fs, logDir)
	if err != nil {
		return nil, fmt.Errorf("read log dir: %w", err)
	}

	var projects []Project
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(logDir, e.Name())
		logs, err := Logs(fs, dir)
		if err != nil {
			return nil, err
		}
		if len(logs) == 0 {
			continue
		}
		projects = append(projects, Project{
			Dir:  dir,
			Name: ReadableName(e.Name()),
			Logs: logs,
		})
	}
	return projects, nil
}

// Logs returns the JSONL logs directly inside dir, in name order.
func Logs(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read project dir: %w", err)
	}

	plain := make(map[string]bool)
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			plain[e.Name()] = true
		}
	}

	var logs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !archive.IsLog(name) {
			continue
		}
		if archive.IsCompressed(name) && plain[strings.TrimSuffix(name, archive.Ext)] {
			continue
		}
		logs = append(logs, filepath.Join(dir, name))
	}
	return logs, nil
}

// ReadableName turns a mangled project directory name back into a path.
// Claude Code replaces "/" with "-", so "-home-alice-src-app" becomes
// "~/alice/src/app".
func ReadableName(dirName string) string {
	name := filepath.Base(dirName)
	if name == "" || name == "." {
		return dirName
	}
	abs := strings.HasPrefix(name, "-")
	name = strings.ReplaceAll(strings.TrimLeft(name, "-"), "-", "/")
	if !abs {
		return name
	}
	name = "/" + name
	if strings.HasPrefix(name, "/home/") {
		return "~/" + strings.TrimPrefix(name, "/home/")
	}
	return name
}

// FindBySessionID locates a session log under logDir by session ID.
// Checks logDir/*/{sessionID}.jsonl then the compressed form.
func FindBySessionID(fs afero.Fs, logDir, sessionID string) (string, error) {
	entries, err := afero.ReadDir(fs, logDir)
	if err != nil {
		return "", err
	}

	for _, name := range []string{sessionID + ".jsonl", sessionID + ".jsonl" + archive.Ext} {
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			candidate := filepath.Join(logDir, e.Name(), name)
			if _, err := fs.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	return "", os.ErrNotExist
}
