package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
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
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatBudget renders an amount with two decimals; zero shows as a dim dash.
func FormatBudget(amount float64) string {
	if amount == 0 {
		return Dim("--")
	}
	return fmt.Sprintf("%.2f", amount)
}

// DoneBox returns a checkbox for the completion flag.
func DoneBox(done bool) string {
	if done {
		return StyleGreen.Render("[x]")
	}
	return StyleDim.Render("[ ]")
}

// ImportantMarker returns a star for important tasks and a blank otherwise.
func ImportantMarker(important bool) string {
	if important {
		return StyleRed.Render("★")
	}
	return " "
}

// Truncate shortens s to width visible runes, ending with an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
