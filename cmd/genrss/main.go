// Package main is the entry point for the genrss CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amsehili/genrss/internal/debug"
)

// Version is set at build time via ldflags
var Version = "dev"

// Global flags
var (
	debugFlag  bool
	configPath string
)

// newRootCmd creates and returns the root command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genrss -d directory [OPTIONS]",
		Short: "Generate an RSS 2.0 feed from media files in a directory",
		Long: `genrss scans a directory of media files and writes an RSS 2.0 /
iTunes podcast feed referencing each file through an absolute URL built
from a host prefix.

Media durations are resolved through a fallback chain: an in-process MP3
frame scan, then soxi, then ffprobe. Tools that are not installed are
skipped; items without a resolvable duration simply omit the
<itunes:duration> tag.

A .txt file sharing a media file's base name provides that item's
description.

Examples of host names:
  - http://localhost:8080 [default]
  - mywebsite.com/media/JapaneseLessons
  - 192.168.1.12:8080
  - https://192.168.1.12/media/JapaneseLessons`,
		Version: Version,
		Example: `  # Feed for the MP3 files of a directory, served from a LAN address
  genrss -d JapaneseLessons -e mp3 -H 192.168.1.12:8080 -o feed.rss

  # Recursive scan, titles from ID3 tags, newest file first
  genrss -d podcasts -r -M -C -H https://example.com/media

  # Store channel metadata once, then generate with flags only
  genrss init
  genrss -d podcasts`,
		RunE:          runGenerate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")

	addGenerateFlags(cmd)

	// Disable the default completion command
	cmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	cmd.AddCommand(initCmd)

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func main() {
	// Parse global flags early to enable debug logging
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "--debug" {
			debug.Enable()
			break
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
