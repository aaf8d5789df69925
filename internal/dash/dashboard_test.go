package dash

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func update(t *testing.T, d Dashboard, msg tea.Msg) Dashboard {
	t.Helper()
	next, _ := d.Update(msg)
	nd, ok := next.(Dashboard)
	if !ok {
		t.Fatalf("Update returned %T, want Dashboard", next)
	}
	return nd
}

func TestDashboardInitialView(t *testing.T) {
	d := New("", nil, nil)

	// The empty model must still render a managed frame (loading badge),
	// never a blank screen.
	if !strings.Contains(d.View(), "loading") {
		t.Errorf("initial view should show the loading badge, got %q", d.View())
	}
}

func TestDashboardAppliesEachEventOnce(t *testing.T) {
	d := New("", nil, nil)

	d = update(t, d, WorkerOutputMsg{ID: "tsc", Chunk: "x"})
	d = update(t, d, WorkerOutputMsg{ID: "tsc", Chunk: "y"})

	if got := d.Model().Worker("tsc").Output; got != "xy" {
		t.Errorf("expected one mutation per event, output = %q", got)
	}
}

func TestDashboardViewReflectsEvents(t *testing.T) {
	d := New("", nil, nil)

	d = update(t, d, ConsoleMsg{Level: LevelInfo, Lines: []string{"compiled successfully"}})
	if !strings.Contains(d.View(), "compiled successfully") {
		t.Error("view must reflect the console event just applied")
	}

	d = update(t, d, ServerStartMsg{Hostname: "localhost", Port: 3000, Protocol: "http://"})
	if !strings.Contains(d.View(), "localhost:3000") {
		t.Errorf("view must reflect the server snapshot, got:\n%s", d.View())
	}
}

func TestDashboardResetThenRender(t *testing.T) {
	d := New("", nil, nil)

	d = update(t, d, WorkerOutputMsg{ID: "tsc", Chunk: "error TS2304 in a.ts\n"})
	if !strings.Contains(d.View(), "error TS2304") {
		t.Fatal("expected worker output before reset")
	}

	d = update(t, d, WorkerResetMsg{ID: "tsc"})
	if strings.Contains(d.View(), "error TS2304") {
		t.Error("reset worker must render with empty output")
	}
}

func TestDashboardQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		d := New("", nil, nil)
		var msg tea.KeyMsg
		if key == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}
		_, cmd := d.Update(msg)
		if cmd == nil {
			t.Errorf("key %q should produce a quit command", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q produced %T, want tea.QuitMsg", key, cmd())
		}
	}
}

func TestDashboardWindowSize(t *testing.T) {
	d := New("", nil, nil)
	d = update(t, d, tea.WindowSizeMsg{Width: 40, Height: 10})

	d = update(t, d, ServerStartMsg{Hostname: "a-very-long-hostname.internal.example.com", Port: 65535, Protocol: "https://", IPs: []string{"192.168.100.200"}})
	view := d.View()
	for _, line := range strings.Split(view, "\n") {
		if len([]rune(line)) > 60 { // ANSI-free in tests; generous margin
			t.Errorf("status line overflows width cap: %q", line)
		}
	}
}
