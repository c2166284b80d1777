// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
// FileSystem is the adapter the download orchestrator publishes episodes
// through:
//
//	fs := ioutils.NewFileSystem()
//	_ = fs.EnsureDir(dest.Join("tmp"))
//	w, _ := fs.Create(dest.Join("tmp", "001.mp3"))
//	// ... stream into w, close it ...
//	err := fs.Move(dest.Join("tmp", "001.mp3"), dest.Join("001.mp3"))
//
// Move is a plain rename: the scratch directory lives inside the destination
// so both paths are on the same filesystem.
//
// # Image Processing
//
// The ImageService handles podcast cover art:
//
//	svc := ioutils.NewImageService()
//	cover, _ := svc.PrepareCover(ctx, imageData, 1000)
package ioutils
