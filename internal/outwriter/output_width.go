package outwriter

import (
	"os"

	"github.com/huangsam/voltview/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns cfg.Width when set, else the detected terminal width.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detected, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detected <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detected
}

// getMaxLabelWidth calculates how wide each matrix label may be so that
// one row label plus columns numeric cells fit on the terminal.
func getMaxLabelWidth(cfg *contract.Config, columns int) int {
	termWidth := getTerminalWidth(cfg)

	// Each cell needs room for "-0.00" plus borders and padding
	cellWidth := cfg.Precision + 6
	available := (termWidth - 4) / (columns + 1)
	if available < cellWidth {
		available = cellWidth
	}
	if available < 4 {
		return 4
	}
	if available > 16 {
		return 16
	}
	return available
}

// truncateLabel shortens s to at most width runes.
func truncateLabel(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
