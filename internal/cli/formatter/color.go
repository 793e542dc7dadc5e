package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jmorand/planline/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColor replaces every predefined style with an unstyled one. Called
// once at startup when stdout is not a terminal.
func DisableColor() {
	plain := lipgloss.NewStyle()
	StyleGreen, StyleYellow, StyleRed = plain, plain, plain
	StyleBlue, StylePurple, StyleDim = plain, plain, plain
	StyleFg, StyleHeader, StyleBold = plain, plain, plain
}

// ProjectStatusPill returns a colored status indicator for project status.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On hold")
	case domain.ProjectClosed:
		return StyleDim.Render("✔ Closed")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// TaskStatusPill returns a colored status indicator for task status.
func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskNotStarted:
		return StyleBlue.Render("○ Not started")
	case domain.TaskInProgress:
		return StyleGreen.Render("● In progress")
	case domain.TaskCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.TaskOnHold:
		return StyleYellow.Render("⊘ On hold")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityBadge returns a colored priority label.
func PriorityBadge(p domain.TaskPriority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("HIGH")
	case domain.PriorityLow:
		return StyleDim.Render("LOW")
	default:
		return StyleYellow.Render("MED")
	}
}

// CriticalMarker flags critical-path tasks.
func CriticalMarker(critical bool) string {
	if critical {
		return StyleRed.Render("▲")
	}
	return " "
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
