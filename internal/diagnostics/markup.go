package diagnostics

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const markupSign = '§'

var colorCodes = map[rune]string{
	'0': "30", '1': "34", '2': "32", '3': "36",
	'4': "31", '5': "35", '6': "33", '7': "37",
	'8': "90", '9': "94", 'a': "92", 'b': "96",
	'c': "91", 'd': "95", 'e': "93", 'f': "97",
}

// Format expands the § color markup. With color off the codes are
// dropped. "§§" always yields a literal §.
func Format(s string, color bool) string {
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != markupSign || i+1 >= len(runes) {
			b.WriteRune(r)
			continue
		}
		next := runes[i+1]
		switch {
		case next == markupSign:
			b.WriteRune(markupSign)
		case next == 'r':
			if color {
				b.WriteString("\x1b[0m")
			}
		case colorCodes[next] != "":
			if color {
				b.WriteString("\x1b[" + colorCodes[next] + "m")
			}
		default:
			b.WriteRune(r)
			continue
		}
		i++
	}
	return b.String()
}

// Escape protects user text from being read as markup.
func Escape(s string) string {
	return strings.ReplaceAll(s, "§", "§§")
}

// ColorEnabled reports whether ANSI colors should be written to f.
func ColorEnabled(f *os.File) bool {
	// NO_COLOR convention: https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if f == nil {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
