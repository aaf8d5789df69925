package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/justinpbarnett/devtop/internal/config"
	"github.com/justinpbarnett/devtop/internal/dash"
	"github.com/justinpbarnett/devtop/internal/server"
	"github.com/justinpbarnett/devtop/internal/watch"
	"github.com/justinpbarnett/devtop/internal/worker"
)

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

const releaseRepo = "justinpbarnett/devtop"

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "version", "--version", "-v":
			runVersion(releaseRepo)
			return
		case "update":
			runUpdate(releaseRepo)
			return
		case "init":
			if err := runInit("."); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "help", "--help", "-h":
			usage()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
			usage()
			os.Exit(2)
		}
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Print(`devtop — live dashboard for a dev server and its build workers

usage:
  devtop            run the dashboard
  devtop init       write a starter devtop.yaml
  devtop version    print version and check for updates
  devtop update     self-update to the latest release

keys: q quit, c copy console log
`)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	root := cfg.Project.Root
	if root == "" || root == "." {
		root, _ = os.Getwd()
	}

	// Port negotiation happens before the TUI takes the terminal: it may
	// need to prompt, and declining exits non-zero.
	port, err := server.Negotiate(cfg.Server.Host, cfg.Server.Port, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	names := make(map[string]string)
	suppress := dash.DefaultSuppressors()
	for _, w := range cfg.Workers {
		if w.Label != "" {
			names[w.ID] = w.Label
		}
		if len(w.Suppress) > 0 {
			suppress[w.ID] = dash.SuppressContains(w.Suppress...)
		}
	}

	p := tea.NewProgram(dash.New(root, names, suppress))

	sup := worker.NewSupervisor(p, cfg.Workers, root)
	srv := server.NewManager(p, cfg.Server, root, port)
	watcher, err := watch.New(p, root, cfg.Watch, sup.Restart)
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// Install output already reaches the install section; a failure
		// is reported there too, and the workers still get their chance.
		_ = sup.RunInstall(cfg.Install)
		sup.StartAll()
		if err := srv.Start(); err != nil {
			p.Send(dash.ConsoleMsg{Level: dash.LevelError, Lines: []string{err.Error()}})
		}
		watcher.Run(ctx)
	}()

	_, runErr := p.Run()

	cancel()
	watcher.Close()
	sup.StopAll()
	srv.Stop()
	return runErr
}
