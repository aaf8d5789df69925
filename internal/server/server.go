package server

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/devtop/internal/config"
	"github.com/justinpbarnett/devtop/internal/dash"
)

// Sender delivers events into the dashboard's message loop. Satisfied
// by *tea.Program.
type Sender interface {
	Send(tea.Msg)
}

// Manager owns the dev server subprocess. It spawns the configured
// command with the negotiated port, announces the connection snapshot
// to the dashboard, and routes server output into the console section.
type Manager struct {
	send Sender
	cfg  config.ServerConfig
	dir  string
	port int

	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager prepares a manager for the given server config. port is
// the already-negotiated listen port.
func NewManager(send Sender, cfg config.ServerConfig, dir string, port int) *Manager {
	return &Manager{send: send, cfg: cfg, dir: dir, port: port}
}

// Start spawns the dev server and emits the server-start snapshot. The
// snapshot replaces any prior one wholesale on the dashboard side.
func (m *Manager) Start() error {
	parts := strings.Fields(m.cfg.Command)
	if len(parts) == 0 {
		return fmt.Errorf("empty dev server command")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = m.dir
	cmd.Env = append(os.Environ(), fmt.Sprintf("PORT=%d", m.port))
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start dev server: %w", err)
	}

	done := make(chan struct{})
	m.mu.Lock()
	m.cmd = cmd
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	go m.forward(stdout, dash.LevelInfo)
	go m.forward(stderr, dash.LevelError)
	go func() {
		err := cmd.Wait()
		close(done)
		if err != nil && ctx.Err() == nil {
			m.send.Send(dash.ConsoleMsg{
				Level: dash.LevelError,
				Lines: []string{fmt.Sprintf("dev server exited: %v", err)},
			})
		}
	}()

	m.send.Send(dash.ServerStartMsg{
		StartTime: time.Now(),
		Hostname:  m.cfg.Host,
		Port:      m.port,
		Protocol:  m.cfg.Protocol,
		IPs:       interfaceIPs(),
	})
	return nil
}

// Stop terminates the server: SIGTERM first, SIGKILL after a grace
// period.
func (m *Manager) Stop() {
	m.mu.Lock()
	cmd, cancel, done := m.cmd, m.cancel, m.done
	m.mu.Unlock()
	if cmd == nil {
		return
	}
	if cmd.Process != nil {
		_ = cmd.Process.Signal(syscall.SIGTERM)
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			_ = cmd.Process.Signal(syscall.SIGKILL)
			<-done
		}
	}
	cancel()
}

func (m *Manager) forward(r io.Reader, level dash.Level) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		m.send.Send(dash.ConsoleMsg{Level: level, Lines: []string{sc.Text()}})
	}
}

// interfaceIPs lists non-loopback IPv4 addresses, primary first.
// Loopback is appended last as a fallback so the list is never empty
// on a connected machine.
func interfaceIPs() []string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	var ips, loopback []string
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip4 := ipnet.IP.To4()
		if ip4 == nil {
			continue
		}
		if ip4.IsLoopback() {
			loopback = append(loopback, ip4.String())
		} else {
			ips = append(ips, ip4.String())
		}
	}
	return append(ips, loopback...)
}
