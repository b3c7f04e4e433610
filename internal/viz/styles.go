package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar renders a filled bar of width cells for a fraction in [0, 1].
func Bar(fraction float64, width int, fill lipgloss.Style) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return fill.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame uint64) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%uint64(len(spinners))]
}
