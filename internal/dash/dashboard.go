package dash

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/devtop/internal/ui/clipboard"
	"github.com/justinpbarnett/devtop/internal/ui/styles"
)

const flashDuration = 3 * time.Second

type clearFlashMsg struct{}

// Dashboard is the bubbletea model that owns the display state. The
// program's message loop is the single-consumer mailbox: producers on
// any goroutine Send events, each Update applies exactly one reducer
// step, and the runtime repaints after every Update. No reduce ever
// runs concurrently with another, so the model needs no locking.
type Dashboard struct {
	model    *Model
	renderer Renderer
	spin     spinner.Model
	flash    string
	width    int
}

// New builds a dashboard over an empty model. basePath relativizes
// build paths for display; names maps worker ids to labels; a nil
// suppress falls back to the stock zero-error rules.
func New(basePath string, names map[string]string, suppress map[string]Suppressor) Dashboard {
	if suppress == nil {
		suppress = DefaultSuppressors()
	}
	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.StatusRunning)),
	)
	return Dashboard{
		model:    NewModel(basePath),
		renderer: Renderer{Names: names, Suppress: suppress},
		spin:     sp,
	}
}

// Model exposes the display state for producers and tests. Only the
// dashboard's Update loop may mutate it.
func (d Dashboard) Model() *Model {
	return d.model
}

func (d Dashboard) Init() tea.Cmd {
	return tea.Batch(tea.ClearScreen, d.spin.Tick)
}

func (d Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return d, tea.Quit
		case "c":
			if err := clipboard.Write(d.consoleText()); err != nil {
				d.flash = "copy failed: " + err.Error()
			} else {
				d.flash = "console copied"
			}
			return d, tea.Tick(flashDuration, func(time.Time) tea.Msg {
				return clearFlashMsg{}
			})
		}
		return d, nil

	case clearFlashMsg:
		d.flash = ""
		return d, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spin, cmd = d.spin.Update(msg)
		return d, cmd
	}

	apply(d.model, msg)
	return d, nil
}

func (d Dashboard) View() string {
	return d.renderer.Render(d.model, d.spin.View(), d.flash, d.width)
}

func (d Dashboard) consoleText() string {
	var b []byte
	for _, line := range d.model.Console {
		b = append(b, line.Text...)
		b = append(b, '\n')
	}
	return string(b)
}
