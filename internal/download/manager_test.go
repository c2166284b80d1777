package download

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/poddl/internal/config"
	"github.com/handiism/poddl/internal/feed"
	"github.com/handiism/poddl/internal/http"
	"github.com/handiism/poddl/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFeedServer serves a three episode feed (newest first) at /feed.xml,
// the media files at /media/N.mp3 and a cover at /cover.png.
func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()

	var cover bytes.Buffer
	require.NoError(t, png.Encode(&cover, image.NewRGBA(image.Rect(0, 0, 40, 20))))

	mux := nethttp.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/feed.xml", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0">
<channel>
  <title>Test Cast</title>
  <image><url>%[1]s/cover.png</url></image>
  <item><title>Newest</title><description>Third one</description><enclosure url="%[1]s/media/3.mp3" type="audio/mpeg"/></item>
  <item><title>Middle</title><description>Second one</description><enclosure url="%[1]s/media/2.mp3" type="audio/mpeg"/></item>
  <item><title>Oldest</title><description>First one</description><enclosure url="%[1]s/media/1.mp3" type="audio/mpeg"/></item>
</channel>
</rss>`, srv.URL)
	})
	mux.HandleFunc("/media/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		fmt.Fprint(w, "audio-"+strings.TrimSuffix(filepath.Base(r.URL.Path), ".mp3"))
	})
	mux.HandleFunc("/cover.png", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write(cover.Bytes())
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testSettings(t *testing.T, srv *httptest.Server) *config.Settings {
	s := config.DefaultSettings()
	s.FeedURL = srv.URL + "/feed.xml"
	s.Destination = filepath.Join(t.TempDir(), "out")
	return s
}

func TestManager_DownloadsFeed(t *testing.T) {
	srv := newFeedServer(t)
	s := testSettings(t, srv)
	s.AppendEpisodeNr = true
	s.ZeroPad = 3
	s.SaveMeta = true

	var events eventLog
	m := NewManager(s, events.add)
	require.NoError(t, m.Initialize(context.Background(), ""))
	require.Len(t, m.Episodes(), 3)
	assert.Equal(t, "Test Cast", m.Podcast().Title)

	report, err := m.StartDownloads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Downloaded)

	data, err := os.ReadFile(filepath.Join(s.Destination, "001. Oldest.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "audio-1", string(data))

	meta, err := os.ReadFile(filepath.Join(s.Destination, "003. Newest.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), "Third one")

	assert.NoDirExists(t, filepath.Join(s.Destination, ScratchDirName))

	received, processed, total := m.GetProgress()
	assert.Equal(t, int64(len("audio-1")*3), received)
	assert.Equal(t, int32(3), processed)
	assert.Equal(t, int32(3), total)
	assert.Equal(t, 0, events.count(LevelError))
}

func TestManager_SecondRunSkips(t *testing.T) {
	srv := newFeedServer(t)
	s := testSettings(t, srv)

	for i := 0; i < 2; i++ {
		m := NewManager(s, nil)
		require.NoError(t, m.Initialize(context.Background(), ""))
		report, err := m.StartDownloads(context.Background())
		require.NoError(t, err)

		if i == 1 {
			assert.Equal(t, 0, report.Downloaded)
			assert.Equal(t, 3, report.Skipped)
		}
	}
}

func TestManager_CoverArtAndPlaylist(t *testing.T) {
	srv := newFeedServer(t)
	s := testSettings(t, srv)
	s.SaveCoverArt = true
	s.CoverArtMaxSize = 10
	s.CreatePlaylist = true
	s.Episodes = "2-"

	m := NewManager(s, nil)
	require.NoError(t, m.Initialize(context.Background(), ""))
	_, err := m.StartDownloads(context.Background())
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(s.Destination, CoverFileName))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 5, cfg.Height)

	playlist, err := os.ReadFile(filepath.Join(s.Destination, "Test Cast.m3u"))
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\n#EXTINF:-1,Middle\nMiddle.mp3\n#EXTINF:-1,Newest\nNewest.mp3\n", string(playlist))
}

func TestManager_ListOnlyCreatesNoDirectories(t *testing.T) {
	srv := newFeedServer(t)
	s := testSettings(t, srv)
	s.ListOnly = true
	s.NewestFirst = true
	s.SaveMeta = true

	m := NewManager(s, nil)
	require.NoError(t, m.Initialize(context.Background(), ""))

	lines := m.List()
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "[1] Newest\n"))
	assert.Contains(t, lines[0], "Third one")
	assert.NoDirExists(t, s.Destination)
}

func TestManager_Selection(t *testing.T) {
	srv := newFeedServer(t)
	s := testSettings(t, srv)
	s.ListOnly = true
	s.Episodes = "3, 1-2, 0-1, 3-2"

	var events eventLog
	m := NewManager(s, events.add)
	require.NoError(t, m.Initialize(context.Background(), ""))

	assert.Equal(t, []string{"[3] Newest", "[1] Oldest", "[2] Middle"}, m.List())
	assert.Equal(t, 2, events.count(LevelWarning), "one warning per invalid range")
}

func TestManager_InitializeErrors(t *testing.T) {
	srv := newFeedServer(t)

	t.Run("nothing to do", func(t *testing.T) {
		s := testSettings(t, srv)
		s.Episodes = "10-20"
		err := NewManager(s, nil).Initialize(context.Background(), "")
		assert.ErrorIs(t, err, ErrNothingToDo)
		// directories are created before the feed is fetched
		assert.DirExists(t, filepath.Join(s.Destination, ScratchDirName))
	})

	t.Run("invalid range", func(t *testing.T) {
		s := testSettings(t, srv)
		s.Episodes = "1-x"
		err := NewManager(s, nil).Initialize(context.Background(), "")
		var rangeErr *selection.InvalidRangeError
		assert.ErrorAs(t, err, &rangeErr)
	})

	t.Run("network error", func(t *testing.T) {
		s := testSettings(t, srv)
		err := NewManager(s, nil).Initialize(context.Background(), srv.URL+"/missing.xml")
		var netErr *http.NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, nethttp.StatusNotFound, netErr.StatusCode)
	})

	t.Run("parse error", func(t *testing.T) {
		s := testSettings(t, srv)
		err := NewManager(s, nil).Initialize(context.Background(), srv.URL+"/cover.png")
		var parseErr *feed.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("directory error", func(t *testing.T) {
		s := testSettings(t, srv)
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))
		s.Destination = blocker

		err := NewManager(s, nil).Initialize(context.Background(), "")
		var dirErr *DirectoryError
		require.ErrorAs(t, err, &dirErr)
		assert.Equal(t, blocker, dirErr.Path.String())
	})
}
