package download

import (
	"io"
	"sync/atomic"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns a short lower-case name of the level.
func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// RunState holds the counters of one run. It is safe to read from another
// goroutine while the run is in progress.
type RunState struct {
	processed     atomic.Int32
	total         atomic.Int32
	receivedBytes atomic.Int64
}

// Processed returns how many episodes have been handled (downloaded,
// skipped or failed).
func (s *RunState) Processed() int32 {
	return s.processed.Load()
}

// Total returns the number of episodes in the run.
func (s *RunState) Total() int32 {
	return s.total.Load()
}

// ReceivedBytes returns the number of media bytes written so far.
func (s *RunState) ReceivedBytes() int64 {
	return s.receivedBytes.Load()
}

func (s *RunState) reset(total int) {
	s.processed.Store(0)
	s.total.Store(int32(total))
	s.receivedBytes.Store(0)
}

// countingWriter adds every written byte to the run's received counter.
type countingWriter struct {
	w     io.Writer
	state *RunState
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.state.receivedBytes.Add(int64(n))
	return n, err
}
