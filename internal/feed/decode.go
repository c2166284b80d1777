package feed

import (
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// RawItem holds the fields of one feed item as found in the XML.
type RawItem struct {
	Title       string
	URL         string
	MimeType    string
	Description string
	Link        string
	GUID        string
	Duration    string
	Published   *time.Time
}

// Feed is the decoded channel: its own fields plus the raw items in native
// order.
type Feed struct {
	Title    string
	Author   string
	ImageURL string
	Items    []RawItem
}

// Decode reads RSS or Atom XML into a Feed.
//
// Only the first enclosure of each item is used. Items without an enclosure
// keep an empty URL and are rejected later by Number.
func Decode(xml string) (*Feed, error) {
	parsed, err := gofeed.NewParser().ParseString(xml)
	if err != nil {
		return nil, &ParseError{Item: -1, Reason: "could not decode feed", Err: err}
	}

	f := &Feed{
		Title: strings.TrimSpace(parsed.Title),
		Items: make([]RawItem, 0, len(parsed.Items)),
	}

	if len(parsed.Authors) > 0 && parsed.Authors[0] != nil {
		f.Author = parsed.Authors[0].Name
	}
	switch {
	case parsed.Image != nil && parsed.Image.URL != "":
		f.ImageURL = parsed.Image.URL
	case parsed.ITunesExt != nil && parsed.ITunesExt.Image != "":
		f.ImageURL = parsed.ITunesExt.Image
	}

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		raw := RawItem{
			Title:       strings.TrimSpace(item.Title),
			Description: item.Description,
			Link:        item.Link,
			GUID:        item.GUID,
			Published:   item.PublishedParsed,
		}
		if raw.Description == "" {
			raw.Description = item.Content
		}
		if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
			raw.URL = strings.TrimSpace(item.Enclosures[0].URL)
			raw.MimeType = item.Enclosures[0].Type
		}
		if item.ITunesExt != nil {
			raw.Duration = item.ITunesExt.Duration
			if raw.Description == "" {
				raw.Description = item.ITunesExt.Summary
			}
		}
		f.Items = append(f.Items, raw)
	}

	return f, nil
}

var (
	tagRegex      = regexp.MustCompile(`<[^>]*>`)
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
)

// stripHTML removes markup from item descriptions, keeping paragraph breaks.
func stripHTML(s string) string {
	s = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "\n\n").Replace(s)
	s = tagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = blankLineRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
