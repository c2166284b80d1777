package audio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testEntries() []PlaylistEntry {
	return []PlaylistEntry{
		{File: "001. Pilot.mp3", Title: "001. Pilot"},
		{File: "002. Second.m4a", Title: "002. Second"},
	}
}

func TestPlaylistCreator_M3U(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, false).CreatePlaylist(testEntries())

	assert.Equal(t, "001. Pilot.mp3\n002. Second.m4a\n", content)
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, true).CreatePlaylist(testEntries())

	assert.True(t, strings.HasPrefix(content, "#EXTM3U\n"))
	assert.Contains(t, content, "#EXTINF:-1,001. Pilot\n001. Pilot.mp3\n")
}

func TestPlaylistCreator_PLS(t *testing.T) {
	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist(testEntries())

	assert.True(t, strings.HasPrefix(content, "[playlist]\n"))
	assert.Contains(t, content, "File2=002. Second.m4a\n")
	assert.Contains(t, content, "Title1=001. Pilot\n")
	assert.Contains(t, content, "NumberOfEntries=2\n")
	assert.True(t, strings.HasSuffix(content, "Version=2\n"))
}

func TestPlaylistCreator_Empty(t *testing.T) {
	assert.Equal(t, "#EXTM3U\n", NewPlaylistCreator(FormatM3U, true).CreatePlaylist(nil))
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		in   string
		want PlaylistFormat
		ext  string
	}{
		{"m3u", FormatM3U, "m3u"},
		{"PLS", FormatPLS, "pls"},
		{" pls ", FormatPLS, "pls"},
		{"wpl", FormatM3U, "m3u"},
		{"", FormatM3U, "m3u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParsePlaylistFormat(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ext, got.Extension())
		})
	}
}
