package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/poddl/internal/download"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A8DADC"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

// printer renders progress events on a terminal.
type printer struct {
	out     io.Writer
	verbose bool
}

func newPrinter(out io.Writer, verbose bool) *printer {
	return &printer{out: out, verbose: verbose}
}

func (p *printer) event(event download.ProgressEvent) {
	if event.Level == download.LevelVerbose && !p.verbose {
		return
	}

	var style lipgloss.Style
	prefix := " "
	switch event.Level {
	case download.LevelError:
		style, prefix = errorStyle, "x"
	case download.LevelWarning:
		style, prefix = warningStyle, "!"
	case download.LevelSuccess:
		style, prefix = successStyle, "+"
	case download.LevelInfo:
		style, prefix = infoStyle, ">"
	default:
		style = dimStyle
	}

	fmt.Fprintln(p.out, style.Render(prefix+" "+event.Message))
}

func (p *printer) summary(report *download.Report, received int64) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, dimStyle.Render(strings.Repeat("-", 40)))

	msg := fmt.Sprintf("Complete! %d downloaded, %d skipped, %d failed (%.2f MB)",
		report.Downloaded, report.Skipped, report.Failed, float64(received)/1024/1024)
	if report.Stopped {
		msg += ", stopped early"
	}

	style := successStyle
	if report.Failed > 0 {
		style = warningStyle
	}
	fmt.Fprintln(p.out, style.Render(msg))
}
