package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/poddl/internal/feed"
	"github.com/handiism/poddl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_EmptyPath(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "m3u", s.PlaylistFormat)
	assert.Equal(t, 1000, s.CoverArtMaxSize)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poddl.yaml")
	content := `
feed_url: "https://example.com/feed.xml"
destination: "/tmp/podcasts"
newest_first: true
zero_pad: 4
episodes: "1-3,7"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/feed.xml", s.FeedURL)
	assert.Equal(t, "/tmp/podcasts", s.Destination)
	assert.True(t, s.NewestFirst)
	assert.Equal(t, 4, s.ZeroPad)
	assert.Equal(t, "1-3,7", s.Episodes)
	// untouched keys keep defaults
	assert.Equal(t, "poddl", s.UserAgent)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poddl.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"zero_pad": 2}`), 0644))

	t.Setenv("PODDL_ZERO_PAD", "5")
	t.Setenv("PODDL_SHORT_NAMES", "true")

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, s.ZeroPad)
	assert.True(t, s.ShortNames)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poddl.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"zero_pad": `), 0644))

	_, err := Load(path)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrInvalidConfig))
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "poddl.json")

	s := DefaultSettings()
	s.FeedURL = "https://example.com/feed.xml"
	s.StopWhenFileFound = true
	s.StopWhenFileFoundString = "Pilot"
	s.RequestsPerSecond = 2.5
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, s, loaded)
}

func TestSettings_Validate(t *testing.T) {
	valid := func() *Settings {
		s := DefaultSettings()
		s.FeedURL = "https://example.com/feed.xml"
		s.Destination = "/tmp/out"
		return s
	}

	tests := []struct {
		name   string
		modify func(*Settings)
		field  string
	}{
		{"valid", func(*Settings) {}, ""},
		{"missing feed", func(s *Settings) { s.FeedURL = " " }, "feed_url"},
		{"missing destination", func(s *Settings) { s.Destination = "" }, "destination"},
		{"list only without destination", func(s *Settings) { s.Destination = ""; s.ListOnly = true }, ""},
		{"negative pad", func(s *Settings) { s.ZeroPad = -1 }, "zero_pad"},
		{"negative cover size", func(s *Settings) { s.CoverArtMaxSize = -1 }, "cover_art_max_size"},
		{"negative rate", func(s *Settings) { s.RequestsPerSecond = -1 }, "requests_per_second"},
		{"pls", func(s *Settings) { s.PlaylistFormat = "PLS" }, ""},
		{"wpl", func(s *Settings) { s.PlaylistFormat = "wpl" }, "playlist_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.modify(s)

			err := s.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestSettings_OrderMode(t *testing.T) {
	tests := []struct {
		name           string
		newestFirst    bool
		reverseNumbers bool
		want           feed.OrderMode
	}{
		{"default", false, false, feed.SimpleReverse},
		{"newest first", true, false, feed.NotReverse},
		{"reverse numbers", true, true, feed.ReverseWithNumbers},
		{"reverse numbers alone", false, true, feed.ReverseWithNumbers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{NewestFirst: tt.newestFirst, ReverseNumbers: tt.reverseNumbers}
			assert.Equal(t, tt.want, s.OrderMode())
		})
	}
}

func TestSettings_NamingMode(t *testing.T) {
	assert.Equal(t, model.NameTitle, (&Settings{}).NamingMode())
	assert.Equal(t, model.NameNumberTitle, (&Settings{AppendEpisodeNr: true}).NamingMode())
	assert.Equal(t, model.NameNumber, (&Settings{ShortNames: true}).NamingMode())
	assert.Equal(t, model.NameNumber, (&Settings{ShortNames: true, AppendEpisodeNr: true}).NamingMode())
}
