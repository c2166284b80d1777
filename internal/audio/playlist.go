package audio

import (
	"fmt"
	"strings"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (INI-style, Winamp/SHOUTcast).
	FormatPLS
)

// ParsePlaylistFormat maps a settings value ("m3u", "pls") to a format.
// Unknown values fall back to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	if strings.EqualFold(strings.TrimSpace(s), "pls") {
		return FormatPLS
	}
	return FormatM3U
}

// Extension returns the file extension for the playlist format, without the dot.
func (pf PlaylistFormat) Extension() string {
	if pf == FormatPLS {
		return "pls"
	}
	return "m3u"
}

// PlaylistEntry is one file listed in a playlist.
type PlaylistEntry struct {
	// File is the file name relative to the playlist location.
	File string

	// Title is the display title.
	Title string
}

// PlaylistCreator generates playlist files for the episodes of a run.
//
// Paths in the playlist are relative; the playlist is written into the
// destination directory next to the episodes.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,001. Pilot
//	// 001. Pilot.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with titles
}

// NewPlaylistCreator creates a new PlaylistCreator.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// Format returns the configured playlist format.
func (p *PlaylistCreator) Format() PlaylistFormat {
	return p.format
}

// CreatePlaylist generates playlist content for the given entries.
func (p *PlaylistCreator) CreatePlaylist(entries []PlaylistEntry) string {
	if p.format == FormatPLS {
		return p.createPLS(entries)
	}
	return p.createM3U(entries)
}

// createM3U generates an M3U playlist. Durations are unknown and written as -1.
func (p *PlaylistCreator) createM3U(entries []PlaylistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:-1,%s\n", e.Title)
		}
		sb.WriteString(e.File + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=001. Pilot.mp3
//	Title1=Pilot
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(entries []PlaylistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, e.File)
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, e.Title)
		fmt.Fprintf(&sb, "Length%d=-1\n", idx)
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(entries))
	sb.WriteString("Version=2\n")

	return sb.String()
}
