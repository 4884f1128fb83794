package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Arbor ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	// Green to teal, top to bottom
	lines := []struct{ text, color string }{
		{"     _         _", "#86efac"},
		{"    / \\   _ __| |__   ___  _ __", "#4ade80"},
		{"   / _ \\ | '__| '_ \\ / _ \\| '__|", "#34d399"},
		{"  / ___ \\| |  | |_) | (_) | |", "#2dd4bf"},
		{" /_/   \\_\\_|  |_.__/ \\___/|_|", "#22d3ee"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
