// Package scan provides media file discovery for genrss.
//
// A scan lists the files of a directory, optionally recursing into
// subdirectories and following symbolic links, filters them against a set
// of extension or glob patterns, and returns them in a deterministic
// order. Sidecar description files (*.txt) are never part of a scan
// result; they are consumed by the metadata layer instead.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/amsehili/genrss/internal/debug"
)

// Options controls a directory scan
type Options struct {
	// Recursive descends into subdirectories
	Recursive bool
	// FollowSymlinks follows symbolic links to directories during a
	// recursive scan
	FollowSymlinks bool
	// Extensions filters the result. Each entry is either a plain
	// extension suffix (mp3, .ogg) or a glob pattern matched against the
	// base name (episode-??.mp3). Empty means all files.
	Extensions []string
	// SortByModTime orders the result newest first instead of by name
	SortByModTime bool
}

// File is a single scanned media file
type File struct {
	// Path relative to the scan root, prefixed with the root as given
	Path string
	// ModTime is the file's modification time
	ModTime time.Time
}

// Scan returns the media files under dir according to opts.
func Scan(dir string, opts Options) ([]File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot find directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var paths []string
	if opts.Recursive {
		paths, err = walk(dir, opts.FollowSymlinks, map[string]bool{})
	} else {
		paths, err = listFlat(dir)
	}
	if err != nil {
		return nil, err
	}

	paths = filterPatterns(paths, opts.Extensions)

	// Sidecar description files never become items
	kept := paths[:0]
	for _, p := range paths {
		if strings.HasSuffix(strings.ToLower(p), ".txt") {
			continue
		}
		kept = append(kept, p)
	}
	paths = dedupe(kept)
	sort.Strings(paths)

	files := make([]File, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			// File vanished between listing and stat; drop it
			debug.LogError(err, "scan")
			continue
		}
		files = append(files, File{Path: p, ModTime: fi.ModTime()})
	}

	if opts.SortByModTime {
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].ModTime.After(files[j].ModTime)
		})
	}

	debug.LogScan(dir, len(files), opts.Recursive)
	return files, nil
}

// listFlat lists the regular files directly under dir. Dotfiles are
// skipped, matching the original flat listing semantics.
func listFlat(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// walk recursively lists files under dir. Symbolic links to files are
// always listed; links to directories are entered only when follow is
// set. visited holds resolved directory paths to guard against cycles.
func walk(dir string, follow bool, visited map[string]bool) ([]string, error) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	if visited[resolved] {
		return nil, nil
	}
	visited[resolved] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			sub, err := walk(path, follow, visited)
			if err != nil {
				return nil, err
			}
			paths = append(paths, sub...)
		case entry.Type()&os.ModeSymlink != 0:
			fi, err := os.Stat(path)
			if err != nil {
				continue
			}
			if fi.IsDir() {
				if !follow {
					continue
				}
				sub, err := walk(path, follow, visited)
				if err != nil {
					return nil, err
				}
				paths = append(paths, sub...)
			} else if fi.Mode().IsRegular() {
				paths = append(paths, path)
			}
		case entry.Type().IsRegular():
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// filterPatterns keeps the paths matching at least one pattern. A pattern
// with glob metacharacters is matched against the lowercased base name;
// a plain extension is a case-insensitive suffix match on the whole path.
func filterPatterns(paths []string, patterns []string) []string {
	if len(patterns) == 0 {
		return paths
	}

	seen := map[string]bool{}
	var selected []string
	for _, raw := range patterns {
		pattern := strings.ToLower(strings.TrimSpace(raw))
		if pattern == "" {
			continue
		}
		for _, p := range paths {
			if seen[p] {
				continue
			}
			if matchPattern(p, pattern) {
				seen[p] = true
				selected = append(selected, p)
			}
		}
	}
	return selected
}

func matchPattern(path, pattern string) bool {
	lower := strings.ToLower(path)
	if strings.ContainsAny(pattern, "*?[{") {
		ok, err := doublestar.Match(pattern, strings.ToLower(filepath.Base(lower)))
		return err == nil && ok
	}
	return strings.HasSuffix(lower, pattern)
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
