// Package feed turns podcast feed XML into a numbered sequence of episodes.
//
// The package works in two steps:
//
//  1. Decode reads RSS/Atom XML into raw item records in the feed's native order
//  2. Number validates the records and assigns dense 1-based episode numbers
//
// # Ordering Modes
//
// Providers usually list the newest item first. The OrderMode decides how that
// native order becomes the emitted order and the episode numbers:
//
//	native order:       [a b c]
//	NotReverse:         a=1 b=2 c=3  (emitted a, b, c)
//	SimpleReverse:      c=1 b=2 a=3  (emitted c, b, a)
//	ReverseWithNumbers: a=3 b=2 c=1  (emitted a, b, c)
//
// # Basic Usage
//
//	parser := feed.NewParser(feed.SimpleReverse)
//	podcast, err := parser.ParseFeed(xml)
//	if err != nil {
//	    var perr *feed.ParseError
//	    if errors.As(err, &perr) {
//	        // malformed feed
//	    }
//	}
package feed
