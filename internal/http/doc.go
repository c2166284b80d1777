// Package http provides the HTTP client used to fetch podcast feeds and
// stream episode media.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Optional request pacing with golang.org/x/time/rate
//   - Streaming downloads with progress tracking
//   - Typed failures (*NetworkError)
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch feed XML
//	xml, err := client.GetString(ctx, "https://example.com/feed.xml")
//
//	// Stream an episode into a file
//	err = client.StreamToFile(ctx, mp3URL, file)
//
// # Progress Tracking
//
// Set OnProgress to observe streamed bytes:
//
//	client.OnProgress = func(written, total int64) { /* update UI */ }
package http
