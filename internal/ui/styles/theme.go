package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)

	// Section headers in the dashboard
	SectionHeaderStyle = lipgloss.NewStyle().Foreground(TitleText).Bold(true).Underline(true)
	ErrorHeaderStyle   = lipgloss.NewStyle().Foreground(StatusError).Bold(true).Underline(true)

	// Status bar badges
	ReadyBadgeStyle   = lipgloss.NewStyle().Foreground(StatusSuccess).Bold(true)
	LoadingBadgeStyle = lipgloss.NewStyle().Foreground(StatusPending)
	BuildingStyle     = lipgloss.NewStyle().Foreground(StatusWarning)

	WarnLineStyle  = lipgloss.NewStyle().Foreground(StatusWarning)
	ErrorLineStyle = lipgloss.NewStyle().Foreground(StatusError)
)
