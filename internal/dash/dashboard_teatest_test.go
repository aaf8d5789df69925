package dash

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

const waitDuration = 3 * time.Second

func TestDashboardLifecycle(t *testing.T) {
	d := New("", map[string]string{"tsc": "TypeScript"}, nil)
	tm := teatest.NewTestModel(t, d, teatest.WithInitialTermSize(100, 30))

	tm.Send(ConsoleMsg{Level: LevelInfo, Lines: []string{"starting dev server"}})
	tm.Send(WorkerOutputMsg{ID: "tsc", Chunk: "src/a.ts(3,1): error TS2304\n"})
	tm.Send(ServerStartMsg{
		StartTime: time.Now(),
		Hostname:  "localhost",
		Port:      8080,
		Protocol:  "http://",
		IPs:       []string{"192.168.1.5"},
	})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("localhost:8080"))
	}, teatest.WithDuration(waitDuration))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(waitDuration))
}

func TestDashboardSuppressionLive(t *testing.T) {
	d := New("", nil, nil)
	tm := teatest.NewTestModel(t, d, teatest.WithInitialTermSize(100, 30))

	// A clean type-check pass stays hidden; a console line proves the
	// frame repainted past it.
	tm.Send(WorkerOutputMsg{ID: "tsc", Chunk: "Found 0 errors. Watching for file changes.\n"})
	tm.Send(ConsoleMsg{Level: LevelInfo, Lines: []string{"compiled successfully"}})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("compiled successfully"))
	}, teatest.WithDuration(waitDuration))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(waitDuration))
}
