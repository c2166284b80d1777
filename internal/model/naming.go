package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NamingMode selects how the base name of an episode file is built.
type NamingMode int

const (
	// NameTitle uses the episode title unmodified.
	NameTitle NamingMode = iota

	// NameNumber uses the (optionally zero-padded) episode number alone.
	NameNumber

	// NameNumberTitle joins the episode number and title as "<number>. <title>".
	NameNumberTitle
)

// String returns the name used in settings files.
func (m NamingMode) String() string {
	switch m {
	case NameNumber:
		return "number"
	case NameNumberTitle:
		return "number-title"
	default:
		return "title"
	}
}

// DefaultZeroPad is the padding width used when padding is requested
// without an explicit width.
const DefaultZeroPad = 3

// EpisodeName computes the name of an episode before file name cleanup.
//
// The number is zero-padded to pad digits when pad > 0 and is only used by
// NameNumber and NameNumberTitle.
//
//	EpisodeName(ep, NameNumber, 3)      // "007"
//	EpisodeName(ep, NameNumberTitle, 0) // "7. Title: Part 1"
func EpisodeName(ep *Episode, mode NamingMode, pad int) string {
	switch mode {
	case NameNumber:
		return PadNumber(ep.Number, pad)
	case NameNumberTitle:
		return PadNumber(ep.Number, pad) + ". " + ep.Title
	default:
		return ep.Title
	}
}

// FileBaseName computes the file name of an episode without extension. It
// is EpisodeName sanitized for use as a file name.
//
//	FileBaseName(ep, NameNumber, 3)      // "007"
//	FileBaseName(ep, NameNumberTitle, 0) // "7. Title_ Part 1"
func FileBaseName(ep *Episode, mode NamingMode, pad int) string {
	return FileNameFor(EpisodeName(ep, mode, pad), ep.Number, pad)
}

// FileNameFor sanitizes name for use as a file name. A name that sanitizes
// to nothing, such as "..." or "   ", falls back to the padded number so the
// result always names a file inside its directory.
func FileNameFor(name string, number, pad int) string {
	if s := sanitizeFileName(name); s != "" {
		return s
	}
	return PadNumber(number, pad)
}

// PadNumber formats n zero-padded to width digits. Width <= 0 means no padding.
func PadNumber(n, width int) string {
	if width <= 0 {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("%0*d", width, n)
}

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// sanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Leading and trailing whitespace is removed
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// SanitizeFileName is the exported form of the file name cleanup used for
// episode names, for other file names derived from feed data.
func SanitizeFileName(name string) string {
	return sanitizeFileName(name)
}
