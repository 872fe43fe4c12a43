package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/funvibe/spj/internal/token"
	"golang.org/x/text/unicode/norm"
)

// Render produces the human readable report for f: the kind and message,
// the call stack innermost first and, when source is attached, the
// affected lines with the failing span underlined.
func (f *Failure) Render(color bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "§c%s§r: §f%s§r", f.Kind(), Escape(f.Message))

	if len(f.Stack) > 0 {
		for i := len(f.Stack); i >= 0; i-- {
			site := f.First()
			if i < len(f.Stack) {
				site = f.Stack[i].Site
			}
			name := "<main>"
			if i > 0 {
				name = f.Stack[i-1].Function
				if name == "" {
					name = "<anonymous>"
				}
			}
			fmt.Fprintf(&b, "\n    at %s:%d:%d", Escape(name), site.Line+1, site.Column)
		}
	}

	if f.Source != "" {
		if f.File != "" {
			fmt.Fprintf(&b, "\n  --> §7%s§r", Escape(f.File))
		}
		b.WriteString("\n")
		b.WriteString(f.renderSource())
	}
	return Format(b.String(), color)
}

type mark struct {
	line, column int
	text, color  string
}

func (f *Failure) renderSource() string {
	var marks []mark
	for _, t := range f.Tokens {
		marks = append(marks, mark{t.Line, t.Column, strings.Repeat("~", t.Width()), "§c"})
	}
	for _, t := range f.Markers {
		marks = append(marks, mark{t.Line, t.Column, t.Lexeme, markerColor(t.Type)})
	}
	sort.SliceStable(marks, func(i, j int) bool {
		if marks[i].line != marks[j].line {
			return marks[i].line < marks[j].line
		}
		return marks[i].column < marks[j].column
	})

	lines := strings.Split(strings.ReplaceAll(f.Source, "\t", "  "), "\n")
	width := len(fmt.Sprint(marks[len(marks)-1].line + 1))
	gutter := strings.Repeat(" ", width+2) + "§3|§r "

	var b strings.Builder
	for i := 0; i < len(marks); {
		line := marks[i].line
		text := ""
		if line < len(lines) {
			text = norm.NFC.String(strings.TrimRight(lines[line], "\r"))
		}
		fmt.Fprintf(&b, "§3 %*d |§r %s\n", width, line+1, Escape(text))
		b.WriteString(gutter)
		col := 0
		for ; i < len(marks) && marks[i].line == line; i++ {
			m := marks[i]
			if m.column > col {
				b.WriteString(strings.Repeat(" ", m.column-col))
				col = m.column
			}
			b.WriteString(m.color + Escape(m.text) + "§r")
			col += token.Width(m.text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func markerColor(t token.TokenType) string {
	switch t {
	case token.WARN_MARKER:
		return "§6"
	case token.INFO_MARKER:
		return "§b"
	}
	return "§c"
}
