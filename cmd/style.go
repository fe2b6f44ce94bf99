package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	err    lipgloss.Style
	header lipgloss.Style
	typ    lipgloss.Style
	faint  lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{err: plain, header: plain, typ: plain, faint: plain}
	}
	return styles{
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		header: lipgloss.NewStyle().Bold(true),
		typ:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		faint:  lipgloss.NewStyle().Faint(true),
	}
}

func (s styles) printErr(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, s.err.Render(msg))
}
