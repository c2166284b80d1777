// Package selection parses episode range specifications such as "1,3-5,10-"
// and applies them to a numbered episode sequence.
package selection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/handiism/poddl/internal/model"
)

// InvalidRangeError is returned when a range specification cannot be parsed.
type InvalidRangeError struct {
	Spec  string
	Token string
	Err   error
}

func (e *InvalidRangeError) Error() string {
	msg := fmt.Sprintf("invalid episode range %q in %q", e.Token, e.Spec)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidRangeError) Unwrap() error {
	return e.Err
}

// EpisodeRange is an inclusive range of 1-based episode numbers.
// When Open is true the range extends to the last episode and End is ignored.
type EpisodeRange struct {
	Start int
	End   int
	Open  bool
}

// Contains reports whether number lies within the range.
func (r EpisodeRange) Contains(number int) bool {
	if number < r.Start {
		return false
	}
	return r.Open || number <= r.End
}

// Valid reports whether the range can match anything: Start must be at least
// 1 and, for closed ranges, not greater than End. Invalid ranges are kept by
// ParseSpec and simply match nothing in Apply.
func (r EpisodeRange) Valid() bool {
	if r.Start < 1 {
		return false
	}
	return r.Open || r.Start <= r.End
}

func (r EpisodeRange) String() string {
	switch {
	case r.Open:
		return fmt.Sprintf("%d-", r.Start)
	case r.Start == r.End:
		return strconv.Itoa(r.Start)
	default:
		return fmt.Sprintf("%d-%d", r.Start, r.End)
	}
}

// ParseSpec parses a comma-separated list of "N", "N-M" and "N-" tokens.
//
//	ParseSpec("1,3-5,10-") // [{1 1} {3 5} {10 open}]
func ParseSpec(spec string) ([]EpisodeRange, error) {
	tokens := strings.Split(spec, ",")
	ranges := make([]EpisodeRange, 0, len(tokens))

	for _, token := range tokens {
		r, err := parseToken(strings.TrimSpace(token))
		if err != nil {
			return nil, &InvalidRangeError{Spec: spec, Token: token, Err: err}
		}
		ranges = append(ranges, r)
	}

	return ranges, nil
}

func parseToken(token string) (EpisodeRange, error) {
	if token == "" {
		return EpisodeRange{}, fmt.Errorf("empty token")
	}

	startText, endText, isPair := strings.Cut(token, "-")

	start, err := parseNumber(startText)
	if err != nil {
		return EpisodeRange{}, err
	}
	if !isPair {
		return EpisodeRange{Start: start, End: start}, nil
	}
	if endText == "" {
		return EpisodeRange{Start: start, Open: true}, nil
	}

	end, err := parseNumber(endText)
	if err != nil {
		return EpisodeRange{}, err
	}
	return EpisodeRange{Start: start, End: end}, nil
}

func parseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing number")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a number", s)
		}
	}
	return strconv.Atoi(s)
}

// Apply returns the episodes matched by ranges.
//
// Ranges are processed in the order given; for each range the episodes are
// scanned in their existing order. Overlapping ranges yield duplicates, and
// ranges outside the available numbers yield nothing. The source slice and
// its episodes are not modified.
func Apply(episodes []*model.Episode, ranges []EpisodeRange) []*model.Episode {
	var selected []*model.Episode
	for _, r := range ranges {
		if !r.Valid() {
			continue
		}
		for _, ep := range episodes {
			if r.Contains(ep.Number) {
				selected = append(selected, ep)
			}
		}
	}
	return selected
}
