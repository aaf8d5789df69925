package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/justinpbarnett/devtop/internal/config"
	"github.com/justinpbarnett/devtop/internal/dash"
)

// Sender delivers events into the dashboard's message loop. Satisfied
// by *tea.Program.
type Sender interface {
	Send(tea.Msg)
}

// Watcher recursively watches the configured paths and reports source
// changes. Each burst of filesystem events marks the touched files as
// building, fires onChange once after the debounce window, then marks
// them done — so the dashboard's Building indicator spans the whole
// rebuild.
type Watcher struct {
	send     Sender
	onChange func()
	base     string
	ignore   []string
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// New builds a watcher rooted at base. onChange runs once per settled
// burst of changes (typically restarting the workers); it may be nil.
func New(send Sender, base string, cfg config.WatchConfig, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		send:     send,
		onChange: onChange,
		base:     base,
		ignore:   cfg.Ignore,
		debounce: time.Duration(cfg.DebounceMs) * time.Millisecond,
		fsw:      fsw,
	}

	for _, p := range cfg.Paths {
		root := filepath.Join(base, p)
		if err := w.addRecursive(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run consumes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(ev.Name)
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if _, seen := pending[ev.Name]; !seen {
				pending[ev.Name] = struct{}{}
				w.send.Send(dash.BuildFileMsg{Path: ev.Name, Building: true})
			}
			timer.Reset(w.debounce)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

		case <-timer.C:
			if w.onChange != nil {
				w.onChange()
			}
			for path := range pending {
				w.send.Send(dash.BuildFileMsg{Path: path, Building: false})
				delete(pending, path)
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.ignored(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// ignored reports whether any path segment matches an ignore entry.
// Entries are plain names ("node_modules") or glob patterns ("*.tmp").
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.base, path)
	if err != nil {
		rel = path
	}
	for _, seg := range strings.Split(rel, string(filepath.Separator)) {
		for _, pat := range w.ignore {
			if seg == pat {
				return true
			}
			if ok, _ := filepath.Match(pat, seg); ok {
				return true
			}
		}
	}
	return false
}
