// Package audio provides post-processing for downloaded episodes: ID3
// tagging of MP3 files and playlist generation.
//
// # ID3 Tagging
//
// The Tagger writes the podcast and episode metadata into MP3 files:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(path, episode, podcast)
//
// Tags written:
//   - TPE1 (Artist): podcast author
//   - TALB (Album): podcast title
//   - TIT2 (Title): episode title
//   - TRCK (Track): episode number
//   - TYER/TDRC: publication date
//   - COMM: episode metadata text
//   - TCON: "Podcast"
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
//
// Supported formats: M3U (optionally extended) and PLS.
package audio
