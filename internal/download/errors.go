package download

import (
	"errors"
	"fmt"

	"github.com/handiism/poddl/internal/model"
)

// ErrNothingToDo is returned when the feed and selection leave no episode
// to list or download.
var ErrNothingToDo = errors.New("no files found")

// DirectoryError reports that the destination or scratch directory could
// not be created.
type DirectoryError struct {
	Path model.Path
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("could not create directory %s: %v", e.Path.DisplayString(), e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// DownloadFailure reports that streaming one episode failed. It is
// recoverable: the run continues with the next episode.
type DownloadFailure struct {
	Number int
	Title  string
	Err    error
}

func (e *DownloadFailure) Error() string {
	return fmt.Sprintf("error downloading episode %d (%s): %v", e.Number, e.Title, e.Err)
}

func (e *DownloadFailure) Unwrap() error {
	return e.Err
}

// MoveFailure reports that a finished scratch file could not be moved to its
// final path. It aborts the run.
type MoveFailure struct {
	From model.Path
	To   model.Path
	Err  error
}

func (e *MoveFailure) Error() string {
	return fmt.Sprintf("error moving temp file %s to %s: %v", e.From.DisplayString(), e.To.DisplayString(), e.Err)
}

func (e *MoveFailure) Unwrap() error {
	return e.Err
}
