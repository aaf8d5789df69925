package worker

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/devtop/internal/config"
	"github.com/justinpbarnett/devtop/internal/dash"
)

type recorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *recorder) all() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

func (r *recorder) waitFor(t *testing.T, what string, match func(tea.Msg) bool) tea.Msg {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, msg := range r.all() {
			if match(msg) {
				return msg
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("%s not seen before deadline; got %v", what, r.all())
	return nil
}

func TestReadChunks(t *testing.T) {
	var chunks []string
	readChunks(strings.NewReader("hello world"), func(c string) {
		chunks = append(chunks, c)
	})
	if strings.Join(chunks, "") != "hello world" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestWorkerOutputAndCompletion(t *testing.T) {
	rec := &recorder{}
	s := NewSupervisor(rec, []config.WorkerConfig{
		{ID: "echoer", Command: "echo all clear"},
	}, t.TempDir())

	s.StartAll()
	defer s.StopAll()

	rec.waitFor(t, "worker output", func(msg tea.Msg) bool {
		out, ok := msg.(dash.WorkerOutputMsg)
		return ok && out.ID == "echoer" && strings.Contains(out.Chunk, "all clear")
	})
	done := rec.waitFor(t, "completion", func(msg tea.Msg) bool {
		d, ok := msg.(dash.WorkerDoneMsg)
		return ok && d.ID == "echoer"
	})
	if done.(dash.WorkerDoneMsg).Err != nil {
		t.Errorf("clean exit should complete without error: %v", done.(dash.WorkerDoneMsg).Err)
	}
}

func TestWorkerFailureCarriesError(t *testing.T) {
	rec := &recorder{}
	s := NewSupervisor(rec, []config.WorkerConfig{
		{ID: "failer", Command: "false"},
	}, t.TempDir())

	s.StartAll()
	defer s.StopAll()

	done := rec.waitFor(t, "completion", func(msg tea.Msg) bool {
		d, ok := msg.(dash.WorkerDoneMsg)
		return ok && d.ID == "failer"
	})
	if done.(dash.WorkerDoneMsg).Err == nil {
		t.Error("non-zero exit should complete with an error")
	}
}

func TestWorkerSpawnFailure(t *testing.T) {
	rec := &recorder{}
	s := NewSupervisor(rec, []config.WorkerConfig{
		{ID: "ghost", Command: "definitely-not-a-real-binary-devtop"},
	}, t.TempDir())

	s.StartAll()

	done := rec.waitFor(t, "completion", func(msg tea.Msg) bool {
		d, ok := msg.(dash.WorkerDoneMsg)
		return ok && d.ID == "ghost"
	})
	if done.(dash.WorkerDoneMsg).Err == nil {
		t.Error("spawn failure should surface as a worker error")
	}
}

func TestRestartEmitsReset(t *testing.T) {
	rec := &recorder{}
	s := NewSupervisor(rec, []config.WorkerConfig{
		{ID: "sleeper", Command: "sleep 30"},
	}, t.TempDir())

	s.StartAll()
	defer s.StopAll()
	time.Sleep(50 * time.Millisecond)

	s.Restart()

	rec.waitFor(t, "reset", func(msg tea.Msg) bool {
		r, ok := msg.(dash.WorkerResetMsg)
		return ok && r.ID == "sleeper"
	})

	// The intentional kill must not surface as a completion.
	for _, msg := range rec.all() {
		if d, ok := msg.(dash.WorkerDoneMsg); ok && d.ID == "sleeper" {
			t.Fatalf("restart leaked a completion event: %+v", d)
		}
	}
}

func TestRunInstallSkipsWhenMarkerExists(t *testing.T) {
	rec := &recorder{}
	dir := t.TempDir()
	s := NewSupervisor(rec, nil, dir)

	// Marker "." always exists relative to dir.
	err := s.RunInstall(config.InstallConfig{Command: "false", Marker: "."})
	if err != nil {
		t.Errorf("install should be skipped, got %v", err)
	}
	if len(rec.all()) != 0 {
		t.Errorf("skipped install must emit nothing, got %v", rec.all())
	}
}

func TestRunInstallStreamsOutput(t *testing.T) {
	rec := &recorder{}
	s := NewSupervisor(rec, nil, t.TempDir())

	err := s.RunInstall(config.InstallConfig{Command: "echo added 12 packages", Marker: "node_modules"})
	if err != nil {
		t.Fatalf("RunInstall() error: %v", err)
	}

	rec.waitFor(t, "install output", func(msg tea.Msg) bool {
		out, ok := msg.(dash.InstallOutputMsg)
		return ok && strings.Contains(out.Chunk, "added 12 packages")
	})
	rec.waitFor(t, "install done", func(msg tea.Msg) bool {
		_, ok := msg.(dash.InstallDoneMsg)
		return ok
	})
}

func TestRunInstallFailure(t *testing.T) {
	rec := &recorder{}
	s := NewSupervisor(rec, nil, t.TempDir())

	if err := s.RunInstall(config.InstallConfig{Command: "false", Marker: "node_modules"}); err == nil {
		t.Error("expected install failure")
	}
	rec.waitFor(t, "install done", func(msg tea.Msg) bool {
		_, ok := msg.(dash.InstallDoneMsg)
		return ok
	})
}

func TestRunInstallNoCommand(t *testing.T) {
	rec := &recorder{}
	s := NewSupervisor(rec, nil, t.TempDir())

	if err := s.RunInstall(config.InstallConfig{}); err != nil {
		t.Errorf("no command should be a no-op, got %v", err)
	}
}
