package outwriter

import (
	"os"

	"github.com/huangsam/secpulse/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the usable terminal width, honoring the explicit
// override and falling back to a conservative default for CI and pipes.
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

// truncateText shortens a message to fit the given width, appending an
// ellipsis when anything was cut.
func truncateText(text string, width int) string {
	if width <= 3 || len(text) <= width {
		return text
	}
	return text[:width-3] + "..."
}
