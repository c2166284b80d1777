// Package model defines the core data structures used throughout poddl.
//
// # Episode
//
// Episode is one feed entry resolved to a downloadable media file:
//
//	ep := model.NewEpisode(3, "Pilot", "https://cdn.example.com/pilot.mp3", "mp3", meta)
//
// Numbers are assigned by the feed parser and are dense: a feed of N items
// yields the numbers 1..N.
//
// # Podcast
//
// Podcast holds the channel title, author and artwork URL plus the parsed
// episodes.
//
// # File Naming
//
// FileBaseName computes the file name of an episode without extension:
//
//	model.FileBaseName(ep, model.NameTitle, 0)       // "Pilot"
//	model.FileBaseName(ep, model.NameNumber, 3)      // "003"
//	model.FileBaseName(ep, model.NameNumberTitle, 3) // "003. Pilot"
//
// Names are sanitized: characters invalid in file names become underscores,
// trailing dots are dropped and whitespace is collapsed.
//
// # Path
//
// Path is the file location type consumed by the download pipeline. Use
// DisplayString for progress messages.
package model
