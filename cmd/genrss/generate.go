package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	internalconfig "github.com/amsehili/genrss/internal/config"
	"github.com/amsehili/genrss/internal/debug"
	"github.com/amsehili/genrss/internal/executor"
	"github.com/amsehili/genrss/internal/feed"
	"github.com/amsehili/genrss/internal/probe"
	"github.com/amsehili/genrss/internal/scan"
	"github.com/amsehili/genrss/pkg/config"
)

const defaultHost = "http://localhost:8080"

// generateOptions holds the effective settings for one feed generation,
// after merging the configuration file with command-line flags.
type generateOptions struct {
	dirname        string
	host           string
	title          string
	description    string
	image          string
	outFile        string
	extensions     string
	recursive      bool
	followSymlinks bool
	sortCreation   bool
	useMetadata    bool
	probeTimeout   time.Duration
}

var genOpts generateOptions

// addGenerateFlags registers the feed generation flags on the root command.
func addGenerateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&genOpts.dirname, "dirname", "d", "", "Directory to look for media files in (required)")
	flags.BoolVarP(&genOpts.recursive, "recursive", "r", false, "Look for media files recursively in subdirectories")
	flags.BoolVarP(&genOpts.followSymlinks, "follow-symlinks", "L", false, "Follow symbolic links when scanning recursively")
	flags.StringVarP(&genOpts.extensions, "extensions", "e", "", "Comma-separated extensions or glob patterns (e.g. mp3,mp4 or '*.og[ga]')")
	flags.StringVarP(&genOpts.outFile, "out", "o", "", "Write the feed to this file instead of standard output")
	flags.StringVarP(&genOpts.host, "host", "H", "", "Host name (and optional path prefix) media URLs are built from")
	flags.StringVarP(&genOpts.image, "image", "i", "", "Channel image: an absolute URL or a path relative to the host")
	flags.BoolVarP(&genOpts.useMetadata, "use-metadata", "M", false, "Use media metadata (e.g. ID3 tags) as item titles")
	flags.StringVarP(&genOpts.title, "title", "t", "", "Feed title (default: the scanned directory's name)")
	flags.StringVarP(&genOpts.description, "description", "p", "", "Feed description")
	flags.BoolVarP(&genOpts.sortCreation, "sort-creation", "C", false, "Sort items by modification time, newest first, and use it as publication date")
}

// runGenerate merges configuration with flags, scans the directory and
// writes the resulting feed.
func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	defer func() { debug.LogTiming("feed generation", time.Since(start)) }()

	opts, err := mergeConfig(cmd)
	if err != nil {
		return err
	}
	if opts.dirname == "" {
		return fmt.Errorf("missing required flag: --dirname (-d)")
	}

	host := feed.NormalizeHost(opts.host)

	files, err := scan.Scan(opts.dirname, scan.Options{
		Recursive:      opts.recursive,
		FollowSymlinks: opts.followSymlinks,
		Extensions:     splitExtensions(opts.extensions),
		SortByModTime:  opts.sortCreation,
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No media files found in directory '%s'\n", opts.dirname)
		return nil
	}

	pubDates := publicationDates(files, opts.sortCreation)

	exec := executor.NewCommandExecutor(opts.probeTimeout)
	builder := &feed.ItemBuilder{
		Host:        host,
		UseMetadata: opts.useMetadata,
		Durations:   probe.NewChain(exec, opts.probeTimeout),
	}

	items := make([]feed.Item, 0, len(files))
	enclosures, durations := 0, 0
	for i, f := range files {
		item := builder.FromFile(f, pubDates[i])
		if item.Enclosure != nil {
			enclosures++
		}
		if item.Duration != "" {
			durations++
		}
		items = append(items, item)
	}
	debug.LogFeed(len(items), enclosures, durations)

	title := opts.title
	if title == "" {
		title = filepath.Base(filepath.Clean(opts.dirname))
	}

	out := &feed.Feed{
		Title:       title,
		Description: opts.description,
		Link:        feed.ChannelLink(host, opts.outFile),
		ImageURL:    feed.ResolveImageURL(host, opts.image),
		Items:       items,
	}

	var w io.Writer = os.Stdout
	if opts.outFile != "" {
		f, err := os.Create(opts.outFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return out.WriteTo(w)
}

// mergeConfig loads the configuration file, if any, and overlays the
// flags that were set on the command line. Flags always win.
func mergeConfig(cmd *cobra.Command) (generateOptions, error) {
	opts := genOpts
	opts.host = defaultHost
	opts.probeTimeout = 30 * time.Second

	var cfg *config.Config
	var err error
	loader := internalconfig.NewLoader()
	if configPath != "" {
		cfg, err = loader.LoadFromPath(configPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return opts, err
	}
	if cfg != nil {
		debug.LogSection("Configuration")
		if cfg.Host != "" {
			opts.host = cfg.Host
		}
		opts.title = cfg.Title
		opts.description = cfg.Description
		opts.image = cfg.Image
		if cfg.OutFile != "" {
			opts.outFile = cfg.OutFile
		}
		if len(cfg.Extensions) > 0 {
			opts.extensions = strings.Join(cfg.Extensions, ",")
		}
		opts.recursive = cfg.Recursive
		opts.followSymlinks = cfg.FollowSymlinks
		opts.sortCreation = cfg.SortByModTime
		opts.useMetadata = cfg.UseMetadata
		if cfg.ProbeTimeout > 0 {
			opts.probeTimeout = time.Duration(cfg.ProbeTimeout) * time.Millisecond
		}
	}

	flags := cmd.Flags()
	setIfChanged := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	setIfChanged("dirname", func() { opts.dirname = genOpts.dirname })
	setIfChanged("host", func() { opts.host = genOpts.host })
	setIfChanged("title", func() { opts.title = genOpts.title })
	setIfChanged("description", func() { opts.description = genOpts.description })
	setIfChanged("image", func() { opts.image = genOpts.image })
	setIfChanged("out", func() { opts.outFile = genOpts.outFile })
	setIfChanged("extensions", func() { opts.extensions = genOpts.extensions })
	setIfChanged("recursive", func() { opts.recursive = genOpts.recursive })
	setIfChanged("follow-symlinks", func() { opts.followSymlinks = genOpts.followSymlinks })
	setIfChanged("sort-creation", func() { opts.sortCreation = genOpts.sortCreation })
	setIfChanged("use-metadata", func() { opts.useMetadata = genOpts.useMetadata })

	return opts, nil
}

// publicationDates returns one publication date per file. When sorting
// by modification time the real timestamps are used; otherwise items
// get artificial dates spaced one day apart so aggregators preserve
// the listing order.
func publicationDates(files []scan.File, sortCreation bool) []time.Time {
	if sortCreation {
		dates := make([]time.Time, len(files))
		for i, f := range files {
			dates[i] = f.ModTime
		}
		return dates
	}
	return feed.PubDateLadder(len(files), time.Now(), rand.Float64)
}

// splitExtensions turns the comma-separated -e value into a clean slice.
func splitExtensions(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
