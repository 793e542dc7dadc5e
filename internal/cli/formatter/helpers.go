package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jmorand/planline/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}

	return boxStyle.Render(content)
}

// FormatDate renders a nullable date as YYYY-MM-DD, or a dimmed placeholder.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(domain.DateLayout)
}

// FormatMoney renders an amount with two decimals.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatPercent renders a percentage with no decimals.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// FormatIndex renders a nullable performance index with two decimals,
// colored green at or above 1.0 and red below.
func FormatIndex(v *float64) string {
	if v == nil {
		return Dim("n/a")
	}
	text := fmt.Sprintf("%.2f", *v)
	if *v >= 1.0 {
		return StyleGreen.Render(text)
	}
	return StyleRed.Render(text)
}

// FormatVariance renders a signed amount, colored by sign: negative variance
// means behind schedule or over budget.
func FormatVariance(v float64) string {
	text := fmt.Sprintf("%+.2f", v)
	switch {
	case v < 0:
		return StyleRed.Render(text)
	case v > 0:
		return StyleGreen.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
