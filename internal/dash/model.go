package dash

import (
	"path/filepath"
	"strconv"
	"time"
)

// Badge is a short human-readable status with a color tag from the
// theme ("green", "red", "yellow", ...).
type Badge struct {
	Label string
	Color string
}

// WorkerStatus tracks one named background worker. Records are created
// lazily the first time an event references the id and live until a
// reset replaces them with a fresh zero value.
type WorkerStatus struct {
	ID     string
	Done   bool
	State  *Badge
	Err    error
	Output string
}

// setErr implements first-error-wins: once Err is set, later completion
// events cannot clear or replace it.
func (w *WorkerStatus) setErr(err error) {
	if w.Err == nil {
		w.Err = err
	}
}

// ServerInfo is the dev server connection snapshot. Each server start
// replaces it wholesale; fields are never updated individually.
type ServerInfo struct {
	StartTime time.Time
	Hostname  string
	Port      int
	Protocol  string
	IPs       []string
}

// Addr returns "hostname:port".
func (s ServerInfo) Addr() string {
	return s.Hostname + ":" + strconv.Itoa(s.Port)
}

// PrimaryIP returns the first interface address, or "" when none are known.
func (s ServerInfo) PrimaryIP() string {
	if len(s.IPs) == 0 {
		return ""
	}
	return s.IPs[0]
}

// Level classifies console log lines.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// ConsoleLine is one entry in the console section.
type ConsoleLine struct {
	Level Level
	Text  string
}

// Model is the aggregate display state the dashboard renders. It is
// owned exclusively by the Dashboard; reducers mutate it one event at
// a time and the renderer only reads it.
type Model struct {
	Console       []ConsoleLine
	Building      map[string]struct{}
	Server        *ServerInfo
	Installing    bool
	InstallOutput string

	workers  map[string]*WorkerStatus
	order    []string
	basePath string
}

// NewModel returns an empty model. basePath is used to relativize build
// paths for display; passing it explicitly avoids any coupling to the
// process working directory.
func NewModel(basePath string) *Model {
	return &Model{
		Building: make(map[string]struct{}),
		workers:  make(map[string]*WorkerStatus),
		basePath: basePath,
	}
}

// Worker returns the status record for id, creating a zero-value record
// on first reference. Insertion order is preserved so render layout is
// stable.
func (m *Model) Worker(id string) *WorkerStatus {
	if w, ok := m.workers[id]; ok {
		return w
	}
	w := &WorkerStatus{ID: id}
	m.workers[id] = w
	m.order = append(m.order, id)
	return w
}

// Workers returns all worker records in insertion order.
func (m *Model) Workers() []*WorkerStatus {
	result := make([]*WorkerStatus, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.workers[id])
	}
	return result
}

// ResetWorker replaces the record for id with a fresh zero value,
// keeping its position in the render order.
func (m *Model) ResetWorker(id string) {
	if _, ok := m.workers[id]; !ok {
		m.Worker(id)
		return
	}
	m.workers[id] = &WorkerStatus{ID: id}
}

// SetBuilding adds or removes a path from the in-progress build set.
// Paths are stored relative to the base path; adds are idempotent and
// removing a non-member is a no-op.
func (m *Model) SetBuilding(path string, building bool) {
	if m.basePath != "" {
		if rel, err := filepath.Rel(m.basePath, path); err == nil && !isParentRef(rel) {
			path = rel
		}
	}
	if building {
		m.Building[path] = struct{}{}
	} else {
		delete(m.Building, path)
	}
}

// AppendConsole appends one line to the console log.
func (m *Model) AppendConsole(level Level, texts ...string) {
	for _, t := range texts {
		m.Console = append(m.Console, ConsoleLine{Level: level, Text: t})
	}
}

func isParentRef(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
