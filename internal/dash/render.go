package dash

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/justinpbarnett/devtop/internal/ui/styles"
	"github.com/justinpbarnett/devtop/internal/ui/text"
)

const indent = "  "

// Renderer turns a Model into terminal output. It holds presentation
// configuration only (display names and suppression rules) and never
// mutates the model, so the same model always renders the same frame.
type Renderer struct {
	// Names maps worker ids to human labels; missing ids render as the
	// raw id.
	Names map[string]string
	// Suppress hides a worker's section when its predicate matches the
	// accumulated output.
	Suppress map[string]Suppressor
}

// Render draws every section in order: console, one section per worker,
// the status bar, and, while dependencies are installing, the install
// section last, with nothing after it. spin is the current spinner
// frame for the animated badges; flash is a transient status bar note;
// width (when positive) caps the status bar line.
func (r Renderer) Render(m *Model, spin, flash string, width int) string {
	var b strings.Builder

	if len(m.Console) > 0 {
		b.WriteString(styles.SectionHeaderStyle.Render("Console") + "\n\n")
		for _, line := range m.Console {
			b.WriteString(indent + consoleStyle(line.Level).Render(line.Text) + "\n")
		}
		b.WriteString("\n")
	}

	for _, w := range m.Workers() {
		if section := r.workerSection(w); section != "" {
			b.WriteString(section)
		}
	}

	bar := r.statusBar(m, spin, flash)
	if width > 0 {
		bar = text.Truncate(bar, width)
	}
	b.WriteString(bar + "\n")

	if m.Installing {
		b.WriteString("\n" + styles.SectionHeaderStyle.Render("Installing dependencies") + "\n\n")
		b.WriteString(text.Indent(strings.TrimSpace(m.InstallOutput), indent) + "\n")
	}

	return b.String()
}

// workerSection renders one worker, or "" when the worker has produced
// no output yet or its output matches the suppression rule for its id
// (a type-checker reporting zero errors stays hidden even though it
// wrote output).
func (r Renderer) workerSection(w *WorkerStatus) string {
	trimmed := strings.TrimSpace(w.Output)
	if trimmed == "" {
		return ""
	}
	if s, ok := r.Suppress[w.ID]; ok && s(w.Output) {
		return ""
	}

	header := r.displayName(w.ID)
	if w.State != nil {
		badge := lipgloss.NewStyle().Foreground(styles.BadgeColor(w.State.Color)).Render(w.State.Label)
		header += " " + badge
	}
	headerStyle := styles.SectionHeaderStyle
	if w.Err != nil {
		headerStyle = styles.ErrorHeaderStyle
	}

	return headerStyle.Render(header) + "\n\n" + text.Indent(trimmed, indent) + "\n\n"
}

// statusBar renders the bottom line: an optional "Building…" indicator,
// then either the ready badge with connection info or a loading badge,
// then any transient flash note.
func (r Renderer) statusBar(m *Model, spin, flash string) string {
	var parts []string

	if len(m.Building) > 0 {
		parts = append(parts, styles.BuildingStyle.Render(spin+" Building…"))
	}

	if m.Server != nil {
		parts = append(parts, styles.ReadyBadgeStyle.Render("✓ ready"))
		addr := m.Server.Protocol + m.Server.Addr()
		if ip := m.Server.PrimaryIP(); ip != "" {
			addr = m.Server.Protocol + m.Server.Addr() + " › " + ip
		}
		parts = append(parts, styles.TextPrimaryStyle.Render(addr))
	} else {
		parts = append(parts, styles.LoadingBadgeStyle.Render(spin+" loading"))
	}

	if flash != "" {
		parts = append(parts, styles.TextSecondaryStyle.Render(flash))
	}

	return strings.Join(parts, styles.TextDimStyle.Render(" │ "))
}

func (r Renderer) displayName(id string) string {
	if name, ok := r.Names[id]; ok && name != "" {
		return name
	}
	return id
}

func consoleStyle(level Level) lipgloss.Style {
	switch level {
	case LevelWarn:
		return styles.WarnLineStyle
	case LevelError:
		return styles.ErrorLineStyle
	default:
		return styles.TextPrimaryStyle
	}
}
