package worker

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/devtop/internal/config"
	"github.com/justinpbarnett/devtop/internal/dash"
	"github.com/justinpbarnett/devtop/internal/ui/text"
)

// Sender delivers events into the dashboard's message loop. Satisfied
// by *tea.Program.
type Sender interface {
	Send(tea.Msg)
}

type managedProc struct {
	cmd        *exec.Cmd
	cancel     context.CancelFunc
	done       chan struct{}
	started    time.Time
	restarting bool
}

// Supervisor spawns and restarts the configured background workers.
// All worker output flows into the dashboard as events; the supervisor
// keeps no output state of its own.
type Supervisor struct {
	send    Sender
	workers []config.WorkerConfig
	dir     string

	mu    sync.Mutex
	procs map[string]*managedProc
}

func NewSupervisor(send Sender, workers []config.WorkerConfig, dir string) *Supervisor {
	return &Supervisor{
		send:    send,
		workers: workers,
		dir:     dir,
		procs:   make(map[string]*managedProc),
	}
}

// StartAll launches every configured worker. A worker that fails to
// spawn reports as completed-with-error instead of aborting the rest.
func (s *Supervisor) StartAll() {
	for _, w := range s.workers {
		if err := s.launch(w); err != nil {
			s.send.Send(dash.WorkerDoneMsg{ID: w.ID, Err: err})
		}
	}
}

// Restart resets and relaunches every worker, in response to a source
// change. The reset event clears each worker's accumulated output
// before the fresh process produces new state.
func (s *Supervisor) Restart() {
	for _, w := range s.workers {
		s.stop(w.ID, true)
		s.send.Send(dash.WorkerResetMsg{ID: w.ID})
		if err := s.launch(w); err != nil {
			s.send.Send(dash.WorkerDoneMsg{ID: w.ID, Err: err})
		}
	}
}

// StopAll terminates all workers without emitting completion events.
func (s *Supervisor) StopAll() {
	for _, w := range s.workers {
		s.stop(w.ID, true)
	}
}

func (s *Supervisor) launch(w config.WorkerConfig) error {
	parts := strings.Fields(w.Command)
	if len(parts) == 0 {
		return fmt.Errorf("worker %s: empty command", w.ID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = s.dir
	cmd.Env = os.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		cancel()
		pw.Close()
		pr.Close()
		return fmt.Errorf("worker %s: %w", w.ID, err)
	}

	proc := &managedProc{
		cmd:     cmd,
		cancel:  cancel,
		done:    make(chan struct{}),
		started: time.Now(),
	}
	s.mu.Lock()
	s.procs[w.ID] = proc
	s.mu.Unlock()

	go readChunks(pr, func(chunk string) {
		s.send.Send(dash.WorkerOutputMsg{ID: w.ID, Chunk: chunk})
	})

	go func() {
		err := cmd.Wait()
		pw.Close()
		close(proc.done)

		s.mu.Lock()
		restarting := proc.restarting
		if s.procs[w.ID] == proc {
			delete(s.procs, w.ID)
		}
		s.mu.Unlock()
		if restarting {
			return
		}

		s.send.Send(dash.WorkerDoneMsg{ID: w.ID, Err: err})
		s.send.Send(dash.ConsoleMsg{
			Level: dash.LevelInfo,
			Lines: []string{fmt.Sprintf("%s exited after %s", w.ID, text.FormatElapsed(time.Since(proc.started)))},
		})
	}()

	return nil
}

// stop terminates one worker. markRestarting suppresses the completion
// event the exit watcher would otherwise emit.
func (s *Supervisor) stop(id string, markRestarting bool) {
	s.mu.Lock()
	proc, ok := s.procs[id]
	if ok && markRestarting {
		proc.restarting = true
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	if proc.cmd.Process != nil {
		// Negative pid signals the whole process group.
		_ = syscall.Kill(-proc.cmd.Process.Pid, syscall.SIGTERM)
		select {
		case <-proc.done:
		case <-time.After(5 * time.Second):
			_ = syscall.Kill(-proc.cmd.Process.Pid, syscall.SIGKILL)
			<-proc.done
		}
	}
	proc.cancel()
}

// RunInstall runs the one-off dependency install when the marker path
// is missing, streaming its output into the dashboard's install
// section. Blocking: workers start only after it returns.
func (s *Supervisor) RunInstall(cfg config.InstallConfig) error {
	if cfg.Command == "" {
		return nil
	}
	if cfg.Marker != "" {
		if _, err := os.Stat(filepath.Join(s.dir, cfg.Marker)); err == nil {
			return nil
		}
	}

	parts := strings.Fields(cfg.Command)
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Dir = s.dir

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		return fmt.Errorf("install: %w", err)
	}

	read := make(chan struct{})
	go func() {
		readChunks(pr, func(chunk string) {
			s.send.Send(dash.InstallOutputMsg{Chunk: chunk})
		})
		close(read)
	}()

	err := cmd.Wait()
	pw.Close()
	<-read
	s.send.Send(dash.InstallDoneMsg{})

	if err != nil {
		s.send.Send(dash.ConsoleMsg{
			Level: dash.LevelError,
			Lines: []string{fmt.Sprintf("install failed: %v", err)},
		})
		return fmt.Errorf("install: %w", err)
	}
	s.send.Send(dash.ConsoleMsg{Level: dash.LevelInfo, Lines: []string{"dependencies installed"}})
	return nil
}

// readChunks forwards reads as they arrive, preserving chunk
// boundaries rather than re-splitting into lines: the display model
// accumulates raw output.
func readChunks(r io.Reader, fn func(string)) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			fn(string(buf[:n]))
		}
		if err != nil {
			return
		}
	}
}
