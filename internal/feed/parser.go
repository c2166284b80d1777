package feed

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/handiism/poddl/internal/model"
)

// OrderMode selects how native feed order maps to emitted order and numbers.
type OrderMode int

const (
	// NotReverse keeps native order; the native-first item is number 1.
	NotReverse OrderMode = iota

	// SimpleReverse reverses native order; the native-last item is number 1
	// and is emitted first.
	SimpleReverse

	// ReverseWithNumbers keeps native order but numbers as if reversed: the
	// native-last item is number 1, the native-first item is number N.
	ReverseWithNumbers
)

func (m OrderMode) String() string {
	switch m {
	case NotReverse:
		return "not-reverse"
	case SimpleReverse:
		return "simple-reverse"
	case ReverseWithNumbers:
		return "reverse-with-numbers"
	default:
		return fmt.Sprintf("OrderMode(%d)", int(m))
	}
}

// Number turns raw items into numbered episodes according to mode.
//
// The result always has len(items) episodes numbered exactly 1..len(items).
// An empty input yields an empty result. Any malformed item aborts the whole
// parse with a *ParseError.
//
//	items: [a b c]
//	NotReverse         -> a=1 b=2 c=3
//	SimpleReverse      -> c=1 b=2 a=3
//	ReverseWithNumbers -> a=3 b=2 c=1
func Number(items []RawItem, mode OrderMode) ([]*model.Episode, error) {
	n := len(items)

	// emit[i] is the native index of the i-th emitted episode,
	// number(i) its episode number.
	var emit func(i int) int
	var number func(i int) int

	switch mode {
	case NotReverse:
		emit = func(i int) int { return i }
		number = func(i int) int { return i + 1 }
	case SimpleReverse:
		emit = func(i int) int { return n - 1 - i }
		number = func(i int) int { return i + 1 }
	case ReverseWithNumbers:
		emit = func(i int) int { return i }
		number = func(i int) int { return n - i }
	default:
		return nil, &ParseError{Item: -1, Reason: fmt.Sprintf("unknown order mode %d", int(mode))}
	}

	episodes := make([]*model.Episode, 0, n)
	for i := 0; i < n; i++ {
		native := emit(i)
		ep, err := toEpisode(native, items[native], number(i))
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, ep)
	}

	return episodes, nil
}

// toEpisode validates a raw item and converts it into an Episode.
func toEpisode(index int, item RawItem, number int) (*model.Episode, error) {
	if strings.TrimSpace(item.Title) == "" {
		return nil, newItemError(index, "missing title")
	}
	if item.URL == "" {
		return nil, newItemError(index, fmt.Sprintf("missing media url for %q", item.Title))
	}

	u, err := url.Parse(item.URL)
	if err != nil {
		return nil, &ParseError{Item: index, Reason: fmt.Sprintf("invalid media url %q", item.URL), Err: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, newItemError(index, fmt.Sprintf("media url %q is not an absolute http(s) url", item.URL))
	}

	ep := model.NewEpisode(number, item.Title, item.URL, extension(u, item.MimeType), metaText(item))
	if item.Published != nil {
		ep.Published = *item.Published
	}
	return ep, nil
}

var mimeExtensions = map[string]string{
	"audio/mpeg":      "mp3",
	"audio/mp3":       "mp3",
	"audio/mp4":       "m4a",
	"audio/x-m4a":     "m4a",
	"audio/aac":       "aac",
	"audio/ogg":       "ogg",
	"audio/opus":      "opus",
	"audio/wav":       "wav",
	"audio/x-wav":     "wav",
	"audio/flac":      "flac",
	"video/mp4":       "mp4",
	"video/x-m4v":     "m4v",
	"video/quicktime": "mov",
}

const defaultExtension = "mp3"

// extension derives the media file extension from the URL path, then from
// the enclosure MIME type, then falls back to mp3.
func extension(u *url.URL, mimeType string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	if isPlainExtension(ext) {
		return ext
	}

	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}

	return defaultExtension
}

func isPlainExtension(ext string) bool {
	if ext == "" || len(ext) > 5 {
		return false
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// metaText builds the descriptive block written to sidecar files and shown
// in list mode. Absent fields are omitted.
func metaText(item RawItem) string {
	var lines []string

	lines = append(lines, item.Title)
	if item.Published != nil && !item.Published.IsZero() {
		lines = append(lines, "Published: "+item.Published.Format("2006-01-02 15:04:05 -0700"))
	}
	if item.Duration != "" {
		lines = append(lines, "Duration: "+item.Duration)
	}
	if item.Link != "" {
		lines = append(lines, "Link: "+item.Link)
	}
	if desc := stripHTML(item.Description); desc != "" {
		lines = append(lines, "", desc)
	}

	return strings.Join(lines, "\n")
}

// Parser decodes feed XML and numbers its items.
//
// Example usage:
//
//	parser := NewParser(SimpleReverse)
//	podcast, err := parser.ParseFeed(xml)
//	if err != nil {
//	    return err
//	}
//	for _, ep := range podcast.Episodes {
//	    fmt.Printf("[%d] %s\n", ep.Number, ep.Title)
//	}
type Parser struct {
	mode OrderMode
}

// NewParser creates a new Parser using the given ordering mode.
func NewParser(mode OrderMode) *Parser {
	return &Parser{mode: mode}
}

// ParseFeed decodes the XML and returns the podcast with numbered episodes.
func (p *Parser) ParseFeed(xml string) (*model.Podcast, error) {
	f, err := Decode(xml)
	if err != nil {
		return nil, err
	}

	episodes, err := Number(f.Items, p.mode)
	if err != nil {
		return nil, err
	}

	return &model.Podcast{
		Title:    f.Title,
		Author:   f.Author,
		ImageURL: f.ImageURL,
		Episodes: episodes,
	}, nil
}
