package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/poddl/internal/feed"
	"github.com/handiism/poddl/internal/model"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding settings,
// e.g. PODDL_ZERO_PAD=4.
const EnvPrefix = "PODDL"

// Settings holds all configuration options.
type Settings struct {
	// Source and destination
	FeedURL     string `json:"feed_url" mapstructure:"feed_url"`
	Destination string `json:"destination" mapstructure:"destination"`
	ListOnly    bool   `json:"list_only" mapstructure:"list_only"`

	// Ordering
	NewestFirst    bool `json:"newest_first" mapstructure:"newest_first"`
	ReverseNumbers bool `json:"reverse_numbers" mapstructure:"reverse_numbers"`

	// Selection, e.g. "1-3,7,10-"
	Episodes string `json:"episodes" mapstructure:"episodes"`

	// File naming
	AppendEpisodeNr bool `json:"append_episode_nr" mapstructure:"append_episode_nr"`
	ShortNames      bool `json:"short_names" mapstructure:"short_names"`
	ZeroPad         int  `json:"zero_pad" mapstructure:"zero_pad"`

	// Stop policy
	StopWhenFileFound       bool   `json:"stop_when_file_found" mapstructure:"stop_when_file_found"`
	StopWhenFileFoundString string `json:"stop_when_file_found_string" mapstructure:"stop_when_file_found_string"`

	// Metadata sidecar files / list output
	SaveMeta bool `json:"save_meta" mapstructure:"save_meta"`

	// Post-processing
	TagEpisodes     bool   `json:"tag_episodes" mapstructure:"tag_episodes"`
	SaveCoverArt    bool   `json:"save_cover_art" mapstructure:"save_cover_art"`
	CoverArtMaxSize int    `json:"cover_art_max_size" mapstructure:"cover_art_max_size"`
	CreatePlaylist  bool   `json:"create_playlist" mapstructure:"create_playlist"`
	PlaylistFormat  string `json:"playlist_format" mapstructure:"playlist_format"` // m3u, pls
	M3UExtended     bool   `json:"m3u_extended" mapstructure:"m3u_extended"`

	// HTTP
	RequestsPerSecond float64 `json:"requests_per_second" mapstructure:"requests_per_second"`
	UserAgent         string  `json:"user_agent" mapstructure:"user_agent"`

	Verbose bool `json:"verbose" mapstructure:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		CoverArtMaxSize: 1000,
		PlaylistFormat:  "m3u",
		M3UExtended:     true,
		UserAgent:       "poddl",
	}
}

// setDefaults registers every setting with v so that environment overrides
// apply to keys absent from the settings file.
func setDefaults(v *viper.Viper, s *Settings) {
	v.SetDefault("feed_url", s.FeedURL)
	v.SetDefault("destination", s.Destination)
	v.SetDefault("list_only", s.ListOnly)
	v.SetDefault("newest_first", s.NewestFirst)
	v.SetDefault("reverse_numbers", s.ReverseNumbers)
	v.SetDefault("episodes", s.Episodes)
	v.SetDefault("append_episode_nr", s.AppendEpisodeNr)
	v.SetDefault("short_names", s.ShortNames)
	v.SetDefault("zero_pad", s.ZeroPad)
	v.SetDefault("stop_when_file_found", s.StopWhenFileFound)
	v.SetDefault("stop_when_file_found_string", s.StopWhenFileFoundString)
	v.SetDefault("save_meta", s.SaveMeta)
	v.SetDefault("tag_episodes", s.TagEpisodes)
	v.SetDefault("save_cover_art", s.SaveCoverArt)
	v.SetDefault("cover_art_max_size", s.CoverArtMaxSize)
	v.SetDefault("create_playlist", s.CreatePlaylist)
	v.SetDefault("playlist_format", s.PlaylistFormat)
	v.SetDefault("m3u_extended", s.M3UExtended)
	v.SetDefault("requests_per_second", s.RequestsPerSecond)
	v.SetDefault("user_agent", s.UserAgent)
	v.SetDefault("verbose", s.Verbose)
}

// Load reads settings from a file in any format viper understands (JSON,
// YAML, TOML, ...), applying PODDL_* environment overrides on top.
//
// An empty path or a missing file yields the defaults (plus environment).
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(filepath.Clean(path))
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Field: path, Reason: "read settings file", Err: err}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, &ConfigError{Field: path, Reason: "decode settings", Err: err}
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the settings describe a runnable job.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.FeedURL) == "" {
		return &ConfigError{Field: "feed_url", Reason: "missing feed URL"}
	}
	if !s.ListOnly && strings.TrimSpace(s.Destination) == "" {
		return &ConfigError{Field: "destination", Reason: "missing output path"}
	}
	if s.ZeroPad < 0 {
		return &ConfigError{Field: "zero_pad", Reason: "must not be negative"}
	}
	if s.CoverArtMaxSize < 0 {
		return &ConfigError{Field: "cover_art_max_size", Reason: "must not be negative"}
	}
	if s.RequestsPerSecond < 0 {
		return &ConfigError{Field: "requests_per_second", Reason: "must not be negative"}
	}
	switch strings.ToLower(s.PlaylistFormat) {
	case "", "m3u", "pls":
	default:
		return &ConfigError{Field: "playlist_format", Reason: "unsupported format " + s.PlaylistFormat}
	}
	return nil
}

// OrderMode maps the ordering flags to a feed ordering mode.
//
//	(default)                → SimpleReverse (oldest first, oldest is 1)
//	newest_first             → NotReverse (newest first, newest is 1)
//	reverse_numbers          → ReverseWithNumbers (newest first, oldest is 1)
func (s *Settings) OrderMode() feed.OrderMode {
	switch {
	case s.ReverseNumbers:
		return feed.ReverseWithNumbers
	case s.NewestFirst:
		return feed.NotReverse
	default:
		return feed.SimpleReverse
	}
}

// NamingMode maps the naming flags to a naming mode. Short names win over
// appended numbers.
func (s *Settings) NamingMode() model.NamingMode {
	switch {
	case s.ShortNames:
		return model.NameNumber
	case s.AppendEpisodeNr:
		return model.NameNumberTitle
	default:
		return model.NameTitle
	}
}
