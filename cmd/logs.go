package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/promakler/sitekit/pkg/diagnostics"
)

type logPrinter struct {
	out io.Writer
	mu  sync.Mutex

	levelStyles map[diagnostics.Level]lipgloss.Style
	checkStyle  lipgloss.Style
	sourceStyle lipgloss.Style
}

func newLogPrinter(out io.Writer) *logPrinter {
	p := &logPrinter{
		out: out,
	}

	if !isTerminal(out) {
		return p
	}

	p.levelStyles = map[diagnostics.Level]lipgloss.Style{
		diagnostics.LevelDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")), // muted
		diagnostics.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")), // blue
		diagnostics.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af")), // yellow
		diagnostics.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")), // red
	}
	p.checkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))  // grey
	p.sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")) // text
	return p
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *logPrinter) Print(d diagnostics.Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := formatLogPlain(d)
	if levelStyle, ok := p.levelStyles[d.Level]; ok {
		line = formatLogRich(d, levelStyle.Render(d.Level.String()), p.checkStyle, p.sourceStyle)
	}

	fmt.Fprintln(p.out, line)
}

func formatLogPlain(d diagnostics.Diagnostic) string {
	var b strings.Builder

	b.WriteString(d.Level.String())
	if d.Check != "" {
		b.WriteString(" [")
		b.WriteString(d.Check)
		b.WriteString("]")
	}
	b.WriteString(": ")

	if d.Source != "" {
		b.WriteString(d.Source)
		b.WriteString(": ")
	}

	b.WriteString(d.Message)
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}

	return b.String()
}

func formatLogRich(d diagnostics.Diagnostic, levelToken string, checkStyle, sourceStyle lipgloss.Style) string {
	var b strings.Builder

	b.WriteString(levelToken)
	if d.Check != "" {
		b.WriteString(" ")
		b.WriteString(checkStyle.Render("[" + d.Check + "]"))
	}
	b.WriteString(": ")

	if d.Source != "" {
		b.WriteString(sourceStyle.Render(d.Source))
		b.WriteString(": ")
	}

	b.WriteString(d.Message)
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}

	return b.String()
}
