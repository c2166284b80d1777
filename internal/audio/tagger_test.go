package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bogem/id3v2"
	"github.com/handiism/poddl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagger_SaveTags(t *testing.T) {
	path := model.Path(filepath.Join(t.TempDir(), "001.mp3"))
	// A file without any ID3 header; the tagger prepends a new tag.
	require.NoError(t, os.WriteFile(path.String(), []byte("not really mpeg audio"), 0644))

	ep := model.NewEpisode(7, "Pilot", "https://cdn.example.com/1.mp3", "mp3", "About the pilot")
	ep.Published = time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	podcast := &model.Podcast{Title: "Test Cast", Author: "Jane Host"}

	require.NoError(t, NewTagger(nil).SaveTags(path, ep, podcast))

	tag, err := id3v2.Open(path.String(), id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()

	assert.Equal(t, "Pilot", tag.Title())
	assert.Equal(t, "Test Cast", tag.Album())
	assert.Equal(t, "Jane Host", tag.Artist())
	assert.Equal(t, "Podcast", tag.Genre())
	assert.Equal(t, "7", tag.GetTextFrame("TRCK").Text)
	assert.Equal(t, "2023-05-15", tag.GetTextFrame("TDRC").Text)

	comments := tag.GetFrames(tag.CommonID("Comments"))
	require.Len(t, comments, 1)
	cf, ok := comments[0].(id3v2.CommentFrame)
	require.True(t, ok)
	assert.Equal(t, "About the pilot", cf.Text)
}

func TestTagger_SaveTagsMissingFile(t *testing.T) {
	path := model.Path(filepath.Join(t.TempDir(), "missing.mp3"))
	ep := model.NewEpisode(1, "x", "https://cdn.example.com/1.mp3", "mp3", "")

	assert.Error(t, NewTagger(nil).SaveTags(path, ep, nil))
}
