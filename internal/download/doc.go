// Package download provides the download orchestration logic for
// fetching podcast episodes.
//
// # Manager
//
// The Manager coordinates the entire download process:
//
//  1. Create the destination and scratch directories (unless list-only)
//  2. Fetch and parse the feed
//  3. Apply the episode selection
//  4. Download episodes one at a time (Orchestrator)
//  5. Tag MP3 files with ID3 metadata (optional)
//  6. Save cover art and generate a playlist (optional)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err := manager.Initialize(ctx, "https://example.com/feed.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := manager.StartDownloads(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Orchestrator
//
// Every episode goes through the same steps:
//
//	PENDING     -> STOPPED      stop policy triggers, the run ends
//	PENDING     -> SKIPPED      final file exists, no request is made
//	PENDING     -> DOWNLOADING  stream into <dest>/tmp/<name>.<ext>
//	DOWNLOADING -> FAILED       reported, partial file removed, run continues
//	DOWNLOADING -> MOVED        renamed to <dest>/<name>.<ext>
//	MOVED       -> META         <dest>/<name>.txt written when enabled
//
// A failed move aborts the run with a *MoveFailure and leaves the scratch
// directory untouched. Otherwise the scratch directory is removed at the
// end of the run if it is empty.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Counters of the running job are available from Manager.GetProgress.
package download
