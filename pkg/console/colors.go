package console

import (
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiHeader    = "\033[95m"
	ansiBlue      = "\033[94m"
	ansiCyan      = "\033[96m"
	ansiGreen     = "\033[92m"
	ansiYellow    = "\033[93m"
	ansiRed       = "\033[91m"
	ansiBold      = "\033[1m"
	ansiUnderline = "\033[4m"
	ansiEnd       = "\033[0m"
)

// palette wraps text in ANSI colour codes, or leaves it alone when disabled.
type palette struct {
	enabled bool
}

func (p palette) wrap(code string, s string) string {
	if !p.enabled {
		return s
	}
	return code + s + ansiEnd
}

func (p palette) Header(s string) string    { return p.wrap(ansiBold+ansiHeader, s) }
func (p palette) Bold(s string) string      { return p.wrap(ansiBold, s) }
func (p palette) Blue(s string) string      { return p.wrap(ansiBlue, s) }
func (p palette) Cyan(s string) string      { return p.wrap(ansiCyan, s) }
func (p palette) Green(s string) string     { return p.wrap(ansiGreen, s) }
func (p palette) Yellow(s string) string    { return p.wrap(ansiYellow, s) }
func (p palette) Red(s string) string       { return p.wrap(ansiRed, s) }
func (p palette) Underline(s string) string { return p.wrap(ansiUnderline, s) }

// colorSupported reports whether f is a terminal that can show colours.
func colorSupported(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
