package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` __        __    _ _   _ _     _   `, "#34d399"},
	{` \ \      / /_ _(_) |_| (_)___| |_ `, "#10b981"},
	{`  \ \ /\ / / _' | | __| | / __| __|`, "#059669"},
	{`   \ V  V / (_| | | |_| | \__ \ |_ `, "#047857"},
	{`    \_/\_/ \__,_|_|\__|_|_|___/\__|`, "#065f46"},
}

// PrintBanner writes the waitlist banner and version, in green where the
// terminal supports color.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w, termenv.String("    v"+version).Faint())
	fmt.Fprintln(w)
}

// AlertStyle highlights alert titles in bold red.
func AlertStyle() func(string) string {
	p := termenv.EnvColorProfile()
	return func(s string) string {
		return termenv.String(s).Bold().Foreground(p.Color("#f87171")).String()
	}
}
