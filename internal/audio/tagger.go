package audio

import (
	"fmt"
	"strconv"

	"github.com/bogem/id3v2"
	"github.com/handiism/poddl/internal/model"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the feed.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    Artist:      TagModify,      // podcast author
//	    Album:       TagModify,      // podcast title
//	    Title:       TagModify,      // episode title
//	    TrackNumber: TagModify,      // episode number
//	    Year:        TagModify,      // publication year
//	    Comment:     TagDoNotModify, // keep the publisher's comment
//	}
type TagConfig struct {
	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Album controls the TALB (Album title) frame.
	Album TagEditAction

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// TrackNumber controls the TRCK (Track number) frame.
	TrackNumber TagEditAction

	// Year controls the TYER and TDRC frames.
	Year TagEditAction

	// Comment controls the COMM frame, filled with the episode metadata.
	Comment TagEditAction

	// Genre controls the TCON frame, set to "Podcast".
	Genre TagEditAction
}

// DefaultTagConfig returns the default tag configuration: every field is
// written from the feed.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Artist:      TagModify,
		Album:       TagModify,
		Title:       TagModify,
		TrackNumber: TagModify,
		Year:        TagModify,
		Comment:     TagModify,
		Genre:       TagModify,
	}
}

// Tagger writes ID3 tags to downloaded MP3 episodes.
//
// Tagging happens on the scratch file, before it is moved into place, so a
// published episode is never rewritten.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	err := tagger.SaveTags(scratchPath, episode, podcast)
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes ID3 tags for ep into the MP3 file at path. podcast may be
// nil, in which case artist and album are left untouched.
func (t *Tagger) SaveTags(path model.Path, ep *model.Episode, podcast *model.Podcast) error {
	tag, err := id3v2.Open(path.String(), id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open tags of %s: %w", path.DisplayString(), err)
	}
	defer tag.Close()

	t.updateStringTags(tag, ep, podcast)

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags of %s: %w", path.DisplayString(), err)
	}
	return nil
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, ep *model.Episode, podcast *model.Podcast) {
	if podcast != nil {
		switch t.config.Artist {
		case TagEmpty:
			tag.SetArtist("")
		case TagModify:
			if podcast.Author != "" {
				tag.SetArtist(podcast.Author)
			}
		}

		switch t.config.Album {
		case TagEmpty:
			tag.SetAlbum("")
		case TagModify:
			tag.SetAlbum(podcast.Title)
		}
	}

	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(ep.Title)
	}

	switch t.config.TrackNumber {
	case TagEmpty:
		tag.DeleteFrames("TRCK")
	case TagModify:
		tag.AddTextFrame("TRCK", id3v2.EncodingUTF8, strconv.Itoa(ep.Number))
	}

	switch t.config.Year {
	case TagEmpty:
		tag.DeleteFrames("TYER")
		tag.DeleteFrames("TDRC")
	case TagModify:
		if !ep.Published.IsZero() {
			tag.AddTextFrame("TYER", id3v2.EncodingUTF8, ep.Published.Format("2006"))
			tag.AddTextFrame("TDRC", id3v2.EncodingUTF8, ep.Published.Format("2006-01-02"))
		}
	}

	switch t.config.Comment {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Comments"))
	case TagModify:
		if ep.Meta != "" {
			tag.DeleteFrames(tag.CommonID("Comments"))
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding:    id3v2.EncodingUTF8,
				Language:    "eng",
				Description: "",
				Text:        ep.Meta,
			})
		}
	}

	switch t.config.Genre {
	case TagEmpty:
		tag.SetGenre("")
	case TagModify:
		tag.SetGenre("Podcast")
	}
}
