package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Collatz ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Warm gradient, from the seed (amber) down to 1 (rose).
	lines := []struct {
		text  string
		color string
	}{
		{`   ____      _ _       _       `, "#fbbf24"},
		{`  / ___|___ | | | __ _| |_ ____`, "#f59e0b"},
		{` | |   / _ \| | |/ _' | __|_  /`, "#f97316"},
		{` | |__| (_) | | | (_| | |_ / / `, "#fb7185"},
		{`  \____\___/|_|_|\__,_|\__/___|`, "#f43f5e"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
