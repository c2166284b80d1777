// Package tui provides a Bubble Tea terminal user interface for poddl.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/poddl/internal/config"
	"github.com/handiism/poddl/internal/download"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	podcastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// errCancelled is shown when the user aborts a running job.
var errCancelled = errors.New("cancelled by user")

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// eventSink forwards manager events to the running program. The program is
// attached after the model has been created.
type eventSink struct {
	program *tea.Program
}

func (s *eventSink) send(event download.ProgressEvent) {
	if s != nil && s.program != nil {
		s.program.Send(ProgressMsg{Event: event})
	}
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	urlInput textinput.Model
	dirInput textinput.Model
	focus    int
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	logs     []LogEntry
	podcast  string
	err      error
	report   *download.Report
	sink     *eventSink

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	// Download manager reference
	manager *download.Manager

	// Download progress
	totalFiles     int32
	processedFiles int32
	receivedBytes  int64

	// Options
	newestFirst bool
	indexNames  bool
	meta        bool
	playlist    bool
	tags        bool
	verbose     bool

	width  int
	height int
}

// NewModel creates a new TUI model. settings provides the defaults for the
// inputs and toggles; nil means config.DefaultSettings().
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	urlInput := textinput.New()
	urlInput.Placeholder = "https://example.com/feed.xml"
	urlInput.SetValue(settings.FeedURL)
	urlInput.Focus()
	urlInput.CharLimit = 500
	urlInput.Width = 60

	dirInput := textinput.New()
	dirInput.Placeholder = "/path/to/podcasts"
	dirInput.SetValue(settings.Destination)
	dirInput.CharLimit = 500
	dirInput.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateInput,
		urlInput:    urlInput,
		dirInput:    dirInput,
		spinner:     sp,
		progress:    prog,
		settings:    settings,
		logs:        make([]LogEntry, 0),
		sink:        &eventSink{},
		ctx:         ctx,
		cancel:      cancel,
		newestFirst: settings.NewestFirst,
		indexNames:  settings.AppendEpisodeNr,
		meta:        settings.SaveMeta,
		playlist:    settings.CreatePlaylist,
		tags:        settings.TagEpisodes,
		verbose:     settings.Verbose,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when the manager reports progress.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// InitDoneMsg is sent when the feed has been fetched and parsed.
	InitDoneMsg struct {
		Podcast  string
		Episodes int
		Manager  *download.Manager
		Err      error
	}

	// DownloadDoneMsg is sent when the run ends.
	DownloadDoneMsg struct {
		Report    *download.Report
		Received  int64
		Processed int32
		Total     int32
		Err       error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}

		case "tab", "shift+tab":
			if m.state == StateInput {
				m.toggleFocus()
				return m, nil
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.urlInput.Value()) != "" && strings.TrimSpace(m.dirInput.Value()) != "" {
				m.state = StateInitializing
				return m, tea.Batch(m.initializeDownload(m.buildSettings()), m.spinner.Tick)
			}

		case "ctrl+n":
			if m.state == StateInput {
				m.newestFirst = !m.newestFirst
				return m, nil
			}

		case "alt+i":
			if m.state == StateInput {
				m.indexNames = !m.indexNames
				return m, nil
			}

		case "alt+m":
			if m.state == StateInput {
				m.meta = !m.meta
				return m, nil
			}

		case "alt+p":
			if m.state == StateInput {
				m.playlist = !m.playlist
				return m, nil
			}

		case "alt+t":
			if m.state == StateInput {
				m.tags = !m.tags
				return m, nil
			}

		case "alt+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for new download
				m.state = StateInput
				m.logs = nil
				m.podcast = ""
				m.err = nil
				m.report = nil
				m.processedFiles = 0
				m.totalFiles = 0
				m.receivedBytes = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.focus = 0
				m.urlInput.Focus()
				m.dirInput.Blur()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == download.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case InitDoneMsg:
		if m.state != StateInitializing {
			return m, nil
		}
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.podcast = fmt.Sprintf("%s (%d episodes)", msg.Podcast, msg.Episodes)
			m.manager = msg.Manager
			m.state = StateDownloading
			// Start the actual download and tick for progress updates
			cmds = append(cmds, m.startDownload(), m.tickProgress())
		}

	case DownloadDoneMsg:
		m.report = msg.Report
		m.receivedBytes = msg.Received
		m.processedFiles = msg.Processed
		m.totalFiles = msg.Total
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errCancelled
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateDownloading {
			received, processed, total := m.manager.GetProgress()
			m.receivedBytes = received
			m.processedFiles = processed
			m.totalFiles = total

			var percent float64
			if total > 0 {
				percent = float64(processed) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text inputs
	if m.state == StateInput {
		var cmd tea.Cmd
		if m.focus == 0 {
			m.urlInput, cmd = m.urlInput.Update(msg)
		} else {
			m.dirInput, cmd = m.dirInput.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) toggleFocus() {
	if m.focus == 0 {
		m.focus = 1
		m.urlInput.Blur()
		m.dirInput.Focus()
		return
	}
	m.focus = 0
	m.dirInput.Blur()
	m.urlInput.Focus()
}

// buildSettings copies the base settings and applies inputs and toggles.
func (m Model) buildSettings() *config.Settings {
	s := *m.settings
	s.FeedURL = strings.TrimSpace(m.urlInput.Value())
	s.Destination = strings.TrimSpace(m.dirInput.Value())
	s.ListOnly = false
	s.NewestFirst = m.newestFirst
	s.AppendEpisodeNr = m.indexNames
	s.SaveMeta = m.meta
	s.CreatePlaylist = m.playlist
	s.TagEpisodes = m.tags
	s.Verbose = m.verbose
	return &s
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("poddl"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download podcast episodes from an RSS feed"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Feed URL:"))
	b.WriteString("\n")
	b.WriteString(m.urlInput.View())
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Output directory:"))
	b.WriteString("\n")
	b.WriteString(m.dirInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s Newest episodes first (ctrl+n)\n", checkbox(m.newestFirst))
	fmt.Fprintf(&b, "  %s Add episode number to file names (alt+i)\n", checkbox(m.indexNames))
	fmt.Fprintf(&b, "  %s Save episode metadata (alt+m)\n", checkbox(m.meta))
	fmt.Fprintf(&b, "  %s Create playlist (alt+p)\n", checkbox(m.playlist))
	fmt.Fprintf(&b, "  %s Write ID3 tags (alt+t)\n", checkbox(m.tags))
	fmt.Fprintf(&b, "  %s Verbose output (alt+v)\n", checkbox(m.verbose))

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching feed..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if m.podcast != "" {
		b.WriteString(podcastStyle.Render(m.podcast))
		b.WriteString("\n\n")
	}

	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Episodes: %d/%d | Downloaded: %.2f MB",
		m.processedFiles,
		m.totalFiles,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var downloaded, skipped, failed int
	stopped := ""
	if m.report != nil {
		downloaded, skipped, failed = m.report.Downloaded, m.report.Skipped, m.report.Failed
		if m.report.Stopped {
			stopped = "\nStopped early"
		}
	}

	return boxStyle.Render(fmt.Sprintf(
		"Download Complete!\n\n"+
			"Downloaded: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d\n"+
			"Size: %.2f MB%s",
		downloaded,
		skipped,
		failed,
		float64(m.receivedBytes)/1024/1024,
		stopped,
	)) + "\n\n" + m.renderLogs()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		fmt.Fprintf(&b, "  %s\n\n", m.err.Error())
	}
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "-"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "x"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "+"
		case download.LevelInfo:
			style = infoStyle
			prefix = ">"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start - tab: switch field - esc: quit"
	case StateInitializing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download - q: quit"
	}
	return ""
}

// initializeDownload fetches the feed and creates the manager.
func (m Model) initializeDownload(settings *config.Settings) tea.Cmd {
	ctx := m.ctx
	sink := m.sink
	return func() tea.Msg {
		if err := settings.Validate(); err != nil {
			return InitDoneMsg{Err: err}
		}

		manager := download.NewManager(settings, sink.send)
		if err := manager.Initialize(ctx, settings.FeedURL); err != nil {
			return InitDoneMsg{Err: err}
		}

		podcast := manager.Podcast()
		return InitDoneMsg{
			Podcast:  podcast.Title,
			Episodes: len(manager.Episodes()),
			Manager:  manager,
		}
	}
}

// startDownload starts the actual download in background.
func (m Model) startDownload() tea.Cmd {
	ctx := m.ctx
	manager := m.manager
	return func() tea.Msg {
		if manager == nil {
			return DownloadDoneMsg{Err: errors.New("no manager")}
		}

		report, err := manager.StartDownloads(ctx)
		received, processed, total := manager.GetProgress()

		return DownloadDoneMsg{
			Report:    report,
			Received:  received,
			Processed: processed,
			Total:     total,
			Err:       err,
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	model := NewModel(settings)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.sink.program = p
	_, err := p.Run()
	return err
}
