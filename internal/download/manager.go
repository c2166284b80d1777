package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/handiism/poddl/internal/audio"
	"github.com/handiism/poddl/internal/config"
	"github.com/handiism/poddl/internal/feed"
	"github.com/handiism/poddl/internal/http"
	ioutils "github.com/handiism/poddl/internal/io"
	"github.com/handiism/poddl/internal/model"
	"github.com/handiism/poddl/internal/selection"
)

// CoverFileName is the file the podcast artwork is saved to.
const CoverFileName = "cover.jpg"

// Manager coordinates a podcast download: it fetches and parses the feed,
// applies the episode selection, runs the Orchestrator and post-processes
// the result (cover art, playlist).
type Manager struct {
	settings     *config.Settings
	opts         Options
	httpClient   *http.Client
	parser       *feed.Parser
	fs           *ioutils.FileSystem
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService
	orchestrator *Orchestrator

	podcast  *model.Podcast
	episodes []*model.Episode

	onProgress func(ProgressEvent)
	mu         sync.RWMutex
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	opts := OptionsFromSettings(settings)

	m := &Manager{
		settings: settings,
		opts:     opts,
		httpClient: http.NewClient(
			http.WithUserAgent(settings.UserAgent),
			http.WithRequestsPerSecond(settings.RequestsPerSecond),
		),
		parser:       feed.NewParser(settings.OrderMode()),
		fs:           ioutils.NewFileSystem(),
		tagger:       audio.NewTagger(audio.DefaultTagConfig()),
		playlist:     audio.NewPlaylistCreator(audio.ParsePlaylistFormat(settings.PlaylistFormat), settings.M3UExtended),
		imageService: ioutils.NewImageService(),
		onProgress:   onProgress,
	}

	var tagger Tagger
	if settings.TagEpisodes {
		tagger = TaggerFunc(m.tagEpisode)
	}
	m.orchestrator = NewOrchestrator(opts, m.httpClient, m.fs, tagger, m.progressEvent)

	return m
}

// Initialize prepares the directories, fetches and parses the feed and
// selects the episodes to process.
//
// An empty feedURL falls back to the URL from the settings. Errors are
// fatal: *DirectoryError, *http.NetworkError, *feed.ParseError,
// *selection.InvalidRangeError or ErrNothingToDo.
func (m *Manager) Initialize(ctx context.Context, feedURL string) error {
	if feedURL == "" {
		feedURL = m.settings.FeedURL
	}

	if !m.settings.ListOnly {
		if err := m.fs.EnsureDir(m.opts.Destination); err != nil {
			return &DirectoryError{Path: m.opts.Destination, Err: err}
		}
		if err := m.fs.EnsureDir(m.opts.Scratch); err != nil {
			return &DirectoryError{Path: m.opts.Scratch, Err: err}
		}
	}

	m.progress(fmt.Sprintf("Fetching URL: %s", feedURL), LevelInfo)

	xml, err := m.httpClient.GetString(ctx, feedURL)
	if err != nil {
		return err
	}

	podcast, err := m.parser.ParseFeed(xml)
	if err != nil {
		return err
	}
	m.progress(fmt.Sprintf("Found podcast: %s (%d episodes)", podcast.Title, len(podcast.Episodes)), LevelVerbose)

	episodes := podcast.Episodes
	if strings.TrimSpace(m.settings.Episodes) != "" {
		ranges, err := selection.ParseSpec(m.settings.Episodes)
		if err != nil {
			return err
		}
		for _, r := range ranges {
			if !r.Valid() {
				m.progress(fmt.Sprintf("Ignoring invalid range %s", r), LevelWarning)
			}
		}
		episodes = selection.Apply(episodes, ranges)
	}

	if len(episodes) == 0 {
		return ErrNothingToDo
	}

	m.mu.Lock()
	m.podcast = podcast
	m.episodes = episodes
	m.mu.Unlock()

	verb := "Downloading"
	if m.settings.ListOnly {
		verb = "Listing"
	}
	m.progress(fmt.Sprintf("%s %d files", verb, len(episodes)), LevelInfo)

	return nil
}

// Podcast returns the parsed feed, nil before Initialize.
func (m *Manager) Podcast() *model.Podcast {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.podcast
}

// Episodes returns the selected episodes in processing order.
func (m *Manager) Episodes() []*model.Episode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.episodes
}

// List returns one entry per selected episode, "[N] Title", followed by the
// metadata block on the next lines when metadata is enabled.
func (m *Manager) List() []string {
	episodes := m.Episodes()
	lines := make([]string, 0, len(episodes))
	for _, ep := range episodes {
		line := fmt.Sprintf("[%d] %s", ep.Number, ep.Title)
		if m.settings.SaveMeta {
			line += "\n" + ep.Meta
		}
		lines = append(lines, line)
	}
	return lines
}

// StartDownloads downloads the selected episodes and then saves the cover
// art and playlist when enabled.
func (m *Manager) StartDownloads(ctx context.Context) (*Report, error) {
	report, err := m.orchestrator.Run(ctx, m.Episodes())
	if err != nil {
		return report, err
	}

	if m.settings.SaveCoverArt {
		m.saveCoverArt(ctx)
	}
	if m.settings.CreatePlaylist {
		m.writePlaylist(report)
	}

	level := LevelSuccess
	if report.Failed > 0 {
		level = LevelWarning
	}
	m.progress(fmt.Sprintf("Finished: %d downloaded, %d skipped, %d failed", report.Downloaded, report.Skipped, report.Failed), level)

	return report, nil
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (received int64, filesProcessed, filesTotal int32) {
	state := m.orchestrator.State()
	return state.ReceivedBytes(), state.Processed(), state.Total()
}

func (m *Manager) tagEpisode(path model.Path, ep *model.Episode) error {
	return m.tagger.SaveTags(path, ep, m.Podcast())
}

func (m *Manager) saveCoverArt(ctx context.Context) {
	podcast := m.Podcast()
	if podcast == nil || !podcast.HasArtwork() {
		return
	}

	path := m.opts.Destination.Join(CoverFileName)
	if m.fs.Exists(path) {
		m.progress(fmt.Sprintf("Skipping existing cover art %s", path.DisplayString()), LevelVerbose)
		return
	}

	data, err := m.httpClient.Get(ctx, podcast.ImageURL)
	if err != nil {
		m.progress(fmt.Sprintf("Error downloading cover art: %v", err), LevelWarning)
		return
	}

	data, err = m.imageService.PrepareCover(ctx, data, m.settings.CoverArtMaxSize)
	if err != nil {
		m.progress(fmt.Sprintf("Error converting cover art: %v", err), LevelWarning)
		return
	}

	if err := m.fs.WriteFile(path, data); err != nil {
		m.progress(fmt.Sprintf("Error saving cover art: %v", err), LevelWarning)
		return
	}
	m.progress(fmt.Sprintf("Saved cover art %s", path.DisplayString()), LevelVerbose)
}

func (m *Manager) writePlaylist(report *Report) {
	if len(report.Files) == 0 {
		return
	}

	entries := make([]audio.PlaylistEntry, 0, len(report.Files))
	for _, f := range report.Files {
		base := f.Base()
		entries = append(entries, audio.PlaylistEntry{
			File:  base,
			Title: strings.TrimSuffix(base, filepath.Ext(base)),
		})
	}

	name := "playlist"
	if podcast := m.Podcast(); podcast != nil {
		if n := model.SanitizeFileName(podcast.Title); n != "" {
			name = n
		}
	}
	path := m.opts.Destination.Join(name).WithExt(m.playlist.Format().Extension())

	if err := m.fs.WriteFile(path, []byte(m.playlist.CreatePlaylist(entries))); err != nil {
		m.progress(fmt.Sprintf("Error creating playlist: %v", err), LevelWarning)
		return
	}
	m.progress(fmt.Sprintf("Created playlist %s", path.DisplayString()), LevelSuccess)
}

func (m *Manager) progress(msg string, level ProgressLevel) {
	m.progressEvent(ProgressEvent{Message: msg, Level: level})
}

func (m *Manager) progressEvent(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
