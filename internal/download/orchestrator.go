package download

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/poddl/internal/config"
	"github.com/handiism/poddl/internal/model"
)

// ScratchDirName is the directory below the destination that holds files
// while they are being downloaded.
const ScratchDirName = "tmp"

// MetaExt is the extension of metadata sidecar files.
const MetaExt = "txt"

// StopMode selects when a run ends before the last episode.
type StopMode int

const (
	// StopOff never stops early.
	StopOff StopMode = iota

	// StopOnExisting stops at the first episode whose final file exists.
	StopOnExisting

	// StopOnSubstring stops at the first episode whose computed name
	// contains the policy's substring. The name is matched as the feed
	// spells it, before characters invalid in file names are replaced.
	StopOnSubstring
)

// StopPolicy decides whether the run ends at the current episode. It is
// evaluated before anything else happens for that episode.
type StopPolicy struct {
	Mode      StopMode
	Substring string
}

// Options configures an Orchestrator run.
type Options struct {
	Naming      model.NamingMode
	ZeroPad     int
	Stop        StopPolicy
	SaveMeta    bool
	TagEpisodes bool

	// Destination receives the finished files; Scratch holds partial ones.
	Destination model.Path
	Scratch     model.Path
}

// OptionsFromSettings builds run options from the user settings.
func OptionsFromSettings(s *config.Settings) Options {
	stop := StopPolicy{Mode: StopOff}
	if s.StopWhenFileFound {
		if s.StopWhenFileFoundString != "" {
			stop = StopPolicy{Mode: StopOnSubstring, Substring: s.StopWhenFileFoundString}
		} else {
			stop = StopPolicy{Mode: StopOnExisting}
		}
	}

	dest := model.Path(s.Destination)
	return Options{
		Naming:      s.NamingMode(),
		ZeroPad:     s.ZeroPad,
		Stop:        stop,
		SaveMeta:    s.SaveMeta,
		TagEpisodes: s.TagEpisodes,
		Destination: dest,
		Scratch:     dest.Join(ScratchDirName),
	}
}

// Fetcher streams remote media into a writer.
type Fetcher interface {
	StreamToFile(ctx context.Context, url string, w io.Writer) error
}

// FileSystem is the set of file operations a run needs.
type FileSystem interface {
	Exists(path model.Path) bool
	EnsureDir(path model.Path) error
	Create(path model.Path) (io.WriteCloser, error)
	Move(src, dst model.Path) error
	WriteFile(path model.Path, data []byte) error
	Remove(path model.Path) error
	IsEmpty(dir model.Path) bool
	DeleteDir(dir model.Path) error
}

// Tagger writes tags into a finished scratch file before it is published.
type Tagger interface {
	Tag(path model.Path, ep *model.Episode) error
}

// TaggerFunc adapts a function to the Tagger interface.
type TaggerFunc func(path model.Path, ep *model.Episode) error

// Tag calls f(path, ep).
func (f TaggerFunc) Tag(path model.Path, ep *model.Episode) error {
	return f(path, ep)
}

// Report summarizes a run.
type Report struct {
	Downloaded int
	Skipped    int
	Failed     int
	Stopped    bool

	// Published lists the final paths written by this run.
	Published []model.Path

	// Files lists the final paths of every downloaded or already present
	// episode, in run order.
	Files []model.Path
}

// Orchestrator downloads a list of episodes one at a time.
//
// For every episode it computes the file name, applies the stop policy,
// skips files that already exist, streams the media into the scratch
// directory and moves the finished file into the destination. A failed
// download is reported and the run goes on; a failed move ends the run.
//
// Example:
//
//	o := NewOrchestrator(opts, client, ioutils.NewFileSystem(), nil, onProgress)
//	report, err := o.Run(ctx, episodes)
type Orchestrator struct {
	opts       Options
	fetcher    Fetcher
	fs         FileSystem
	tagger     Tagger
	state      RunState
	onProgress func(ProgressEvent)
}

// NewOrchestrator creates an Orchestrator. tagger and onProgress may be nil.
func NewOrchestrator(opts Options, fetcher Fetcher, fs FileSystem, tagger Tagger, onProgress func(ProgressEvent)) *Orchestrator {
	if opts.Scratch == "" {
		opts.Scratch = opts.Destination.Join(ScratchDirName)
	}
	return &Orchestrator{
		opts:       opts,
		fetcher:    fetcher,
		fs:         fs,
		tagger:     tagger,
		onProgress: onProgress,
	}
}

// State returns the live counters of the current run.
func (o *Orchestrator) State() *RunState {
	return &o.state
}

// Paths returns the final, metadata and scratch paths of an episode.
func (o *Orchestrator) Paths(ep *model.Episode) (final, meta, scratch model.Path) {
	p := o.paths(ep)
	return p.final, p.meta, p.scratch
}

// episodePaths holds the names and paths of one episode, computed once per
// episode.
type episodePaths struct {
	title   string // name before sanitizing, matched by StopOnSubstring
	final   model.Path
	meta    model.Path
	scratch model.Path
}

func (o *Orchestrator) paths(ep *model.Episode) episodePaths {
	title := model.EpisodeName(ep, o.opts.Naming, o.opts.ZeroPad)
	name := model.FileNameFor(title, ep.Number, o.opts.ZeroPad)
	return episodePaths{
		title:   title,
		final:   o.opts.Destination.Join(name).WithExt(ep.Ext),
		meta:    o.opts.Destination.Join(name).WithExt(MetaExt),
		scratch: o.opts.Scratch.Join(name).WithExt(ep.Ext),
	}
}

// Run processes episodes in order. The destination and scratch directories
// must exist.
//
// The returned error is a *MoveFailure, in which case the scratch directory
// is left as it is, or the context error when ctx is cancelled. Download
// failures are counted in the report, not returned.
func (o *Orchestrator) Run(ctx context.Context, episodes []*model.Episode) (*Report, error) {
	o.state.reset(len(episodes))
	report := &Report{}
	size := len(episodes)

	for i, ep := range episodes {
		if err := ctx.Err(); err != nil {
			o.cleanup()
			return report, err
		}

		p := o.paths(ep)
		final, meta, scratch := p.final, p.meta, p.scratch

		if o.shouldStop(p.title, final) {
			report.Stopped = true
			break
		}

		if o.fs.Exists(final) {
			o.progress(fmt.Sprintf("Skipping file %s", final.DisplayString()), LevelVerbose)
			report.Skipped++
			report.Files = append(report.Files, final)
			o.state.processed.Add(1)
			continue
		}

		o.progress(fmt.Sprintf("Downloading file %d/%d [%d] %s", i+1, size, ep.Number, ep.Title), LevelInfo)

		if err := o.download(ctx, ep, scratch); err != nil {
			o.progress(err.Error(), LevelError)
			report.Failed++
			o.state.processed.Add(1)
			continue
		}

		if o.opts.TagEpisodes && o.tagger != nil && strings.EqualFold(ep.Ext, "mp3") {
			if err := o.tagger.Tag(scratch, ep); err != nil {
				o.progress(fmt.Sprintf("Error tagging %s: %v", ep.Title, err), LevelWarning)
			}
		}

		if err := o.fs.Move(scratch, final); err != nil {
			o.state.processed.Add(1)
			return report, &MoveFailure{From: scratch, To: final, Err: err}
		}

		if o.opts.SaveMeta {
			if err := o.fs.WriteFile(meta, []byte(ep.Meta+"\n")); err != nil {
				o.progress(fmt.Sprintf("Error writing %s: %v", meta.DisplayString(), err), LevelWarning)
			}
		}

		o.progress(fmt.Sprintf("Downloaded: %s", final.Base()), LevelVerbose)
		report.Downloaded++
		report.Published = append(report.Published, final)
		report.Files = append(report.Files, final)
		o.state.processed.Add(1)
	}

	o.cleanup()
	return report, nil
}

// shouldStop reports whether the run ends at the episode named title.
func (o *Orchestrator) shouldStop(title string, final model.Path) bool {
	switch o.opts.Stop.Mode {
	case StopOnSubstring:
		if o.opts.Stop.Substring != "" && strings.Contains(title, o.opts.Stop.Substring) {
			o.progress(fmt.Sprintf("Found string %s in title %s, exiting", o.opts.Stop.Substring, title), LevelInfo)
			return true
		}
	case StopOnExisting:
		if o.fs.Exists(final) {
			o.progress(fmt.Sprintf("File exists %s, exiting", final.DisplayString()), LevelInfo)
			return true
		}
	}
	return false
}

// download streams ep into scratch. On failure the partial file is removed.
func (o *Orchestrator) download(ctx context.Context, ep *model.Episode, scratch model.Path) error {
	w, err := o.fs.Create(scratch)
	if err != nil {
		return &DownloadFailure{Number: ep.Number, Title: ep.Title, Err: err}
	}

	err = o.fetcher.StreamToFile(ctx, ep.URL, &countingWriter{w: w, state: &o.state})
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := o.fs.Remove(scratch); rmErr != nil {
			o.progress(fmt.Sprintf("Error removing %s: %v", scratch.DisplayString(), rmErr), LevelWarning)
		}
		return &DownloadFailure{Number: ep.Number, Title: ep.Title, Err: err}
	}
	return nil
}

// cleanup deletes the scratch directory when nothing was left behind.
func (o *Orchestrator) cleanup() {
	if !o.fs.IsEmpty(o.opts.Scratch) {
		return
	}
	if err := o.fs.DeleteDir(o.opts.Scratch); err != nil {
		o.progress(fmt.Sprintf("Error deleting %s: %v", o.opts.Scratch.DisplayString(), err), LevelWarning)
	}
}

func (o *Orchestrator) progress(msg string, level ProgressLevel) {
	if o.onProgress != nil {
		o.onProgress(ProgressEvent{Message: msg, Level: level})
	}
}
