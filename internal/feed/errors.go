package feed

import "fmt"

// ParseError is returned when feed content cannot be turned into episodes.
//
// Item is the 0-based native position of the offending item, or -1 when the
// error concerns the feed as a whole.
type ParseError struct {
	Item   int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Item >= 0 {
		msg = fmt.Sprintf("item %d: %s", e.Item, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "parse feed: " + msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newItemError(item int, reason string) error {
	return &ParseError{Item: item, Reason: reason}
}
