package model

import "time"

// Episode is one feed entry resolved to a downloadable media file.
//
// Episodes are created once per run by the feed parser and are not modified
// afterwards. Number is assigned by the parser according to the ordering mode
// and is dense across the parsed feed: for N items the numbers are exactly 1..N.
//
// Example:
//
//	ep := NewEpisode(3, "Pilot", "https://cdn.example.com/pilot.mp3", "mp3", "")
//	// FileBaseName(ep, NameNumberTitle, 3) == "003. Pilot"
type Episode struct {
	// Number is the synthetic 1-based episode number.
	Number int

	// Title is the display title, also used for file naming and stop matching.
	Title string

	// URL is the location of the media file.
	URL string

	// Ext is the media file extension without the leading dot.
	Ext string

	// Meta is a free-form descriptive text block. May be empty.
	Meta string

	// Published is the publication time. Zero if the feed did not provide one.
	Published time.Time
}

// NewEpisode creates a new Episode.
func NewEpisode(number int, title, url, ext, meta string) *Episode {
	return &Episode{
		Number: number,
		Title:  title,
		URL:    url,
		Ext:    ext,
		Meta:   meta,
	}
}

// Podcast is a parsed feed: channel level information plus its episodes in
// emitted order.
type Podcast struct {
	// Title is the channel title.
	Title string

	// Author is the channel author, if any.
	Author string

	// ImageURL is the channel artwork. Empty string means no artwork.
	ImageURL string

	// Episodes holds the numbered episodes in emitted order.
	Episodes []*Episode
}

// HasArtwork returns true if the podcast has cover art available for download.
func (p *Podcast) HasArtwork() bool {
	return p.ImageURL != ""
}
