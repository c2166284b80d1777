package model

import "path/filepath"

// Path is a filesystem location used by the download pipeline.
//
// Go strings are UTF-8 and the os package converts to the platform encoding
// (UTF-16 on Windows) itself, so one implementation serves every platform.
type Path string

// Join appends elements to the path using the platform separator.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// WithExt returns the path with "." and ext appended.
func (p Path) WithExt(ext string) Path {
	if ext == "" {
		return p
	}
	return Path(string(p) + "." + ext)
}

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// DisplayString returns the path as printed in progress messages.
func (p Path) DisplayString() string {
	return filepath.ToSlash(string(p))
}

// String implements fmt.Stringer and returns the native path.
func (p Path) String() string {
	return string(p)
}
