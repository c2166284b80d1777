package main

import (
	"context"
	"fmt"
	"io"

	"github.com/handiism/poddl/internal/config"
	"github.com/handiism/poddl/internal/download"
	"github.com/handiism/poddl/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runFunc executes a job with fully resolved settings.
type runFunc func(ctx context.Context, settings *config.Settings, out io.Writer) error

// newRootCmd builds the poddl command. run is called once flags, arguments
// and the settings file have been merged and validated.
func newRootCmd(run runFunc) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "poddl [feed-url] [output-dir]",
		Short: "Download podcast episodes from an RSS feed",
		Long: `poddl downloads every episode of a podcast feed into a directory.

Episodes are numbered oldest first unless --newest-first is given. Files that
already exist are skipped, so running poddl again only fetches new episodes.

Examples:
  poddl https://example.com/feed.xml ~/Podcasts/Example
  poddl -l -r https://example.com/feed.xml
  poddl -i -z=3 -n 1-10,15 https://example.com/feed.xml -o ~/Podcasts/Example
  poddl -x https://example.com/feed.xml ~/Podcasts/Example

Every setting can also come from a settings file (--config) or from
PODDL_* environment variables, e.g. PODDL_ZERO_PAD=4.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd.Flags(), args, settings); err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), settings, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "settings file (json, yaml, toml)")
	f.StringP("output", "o", "", "output path")
	f.BoolP("list", "l", false, "only display the list of episodes")
	f.BoolP("newest-first", "r", false, "download/list newest episodes first")
	f.Bool("reverse-numbers", false, "newest episodes first, oldest episode keeps number 1")
	f.BoolP("index", "i", false, "add episode number to file names")
	f.BoolP("short-names", "s", false, "use episode number as file name (nnn.ext)")
	f.IntP("zero-pad", "z", 0, "zero pad episode numbers to N digits, use -z=N (3 when N is left out)")
	f.Lookup("zero-pad").NoOptDefVal = fmt.Sprint(model.DefaultZeroPad)
	f.StringP("episodes", "n", "", "episodes to download, N[-N][,N[-N]]")
	f.BoolP("stop-on-existing", "x", false, "quit when the first existing file is found")
	f.String("stop-on", "", "quit when an episode name contains this string")
	f.BoolP("meta", "m", false, "print meta information in the list or write it to .txt files")
	f.Bool("tag", false, "write ID3 tags to MP3 episodes")
	f.Bool("cover", false, "save the podcast artwork as cover.jpg")
	f.Bool("playlist", false, "create a playlist of the downloaded episodes")
	f.String("playlist-format", "m3u", "playlist format (m3u, pls)")
	f.Float64("rate", 0, "maximum requests per second (0 = unlimited)")
	f.BoolP("verbose", "v", false, "show verbose output")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// applyFlags overlays positional arguments and explicitly set flags on the
// loaded settings.
func applyFlags(f *pflag.FlagSet, args []string, s *config.Settings) error {
	if len(args) > 0 {
		s.FeedURL = args[0]
	}
	if len(args) > 1 {
		s.Destination = args[1]
	}
	if f.Changed("output") {
		s.Destination, _ = f.GetString("output")
	}

	bools := []struct {
		flag   string
		target *bool
	}{
		{"list", &s.ListOnly},
		{"newest-first", &s.NewestFirst},
		{"reverse-numbers", &s.ReverseNumbers},
		{"index", &s.AppendEpisodeNr},
		{"short-names", &s.ShortNames},
		{"stop-on-existing", &s.StopWhenFileFound},
		{"meta", &s.SaveMeta},
		{"tag", &s.TagEpisodes},
		{"cover", &s.SaveCoverArt},
		{"playlist", &s.CreatePlaylist},
		{"verbose", &s.Verbose},
	}
	for _, b := range bools {
		if !f.Changed(b.flag) {
			continue
		}
		v, err := f.GetBool(b.flag)
		if err != nil {
			return err
		}
		*b.target = v
	}

	if f.Changed("zero-pad") {
		s.ZeroPad, _ = f.GetInt("zero-pad")
	}
	if f.Changed("episodes") {
		s.Episodes, _ = f.GetString("episodes")
	}
	if f.Changed("stop-on") {
		s.StopWhenFileFoundString, _ = f.GetString("stop-on")
		s.StopWhenFileFound = true
	}
	if f.Changed("playlist-format") {
		s.PlaylistFormat, _ = f.GetString("playlist-format")
	}
	if f.Changed("rate") {
		s.RequestsPerSecond, _ = f.GetFloat64("rate")
	}

	return nil
}

// run performs a list or download job, printing progress to out.
func run(ctx context.Context, settings *config.Settings, out io.Writer) error {
	p := newPrinter(out, settings.Verbose)

	fmt.Fprintln(out, titleStyle.Render("poddl"))
	fmt.Fprintln(out)

	manager := download.NewManager(settings, p.event)
	if err := manager.Initialize(ctx, settings.FeedURL); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if settings.ListOnly {
		for _, line := range manager.List() {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	report, err := manager.StartDownloads(ctx)
	if err != nil {
		return err
	}

	received, _, _ := manager.GetProgress()
	p.summary(report, received)
	return nil
}
