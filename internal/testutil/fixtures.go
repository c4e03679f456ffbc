// Package testutil provides helpers for building temporary media trees in tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// MediaFile describes one file of a temporary media tree.
type MediaFile struct {
	// Path relative to the tree root, slash separated
	Path string
	// Content of the file; media fixtures do not need to be playable
	Content string
	// ModTime is applied when non-zero
	ModTime time.Time
}

// WriteTree creates the given files under a new temp directory and returns
// its path. Intermediate directories are created as needed.
func WriteTree(t *testing.T, files []MediaFile) string {
	t.Helper()

	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
		if !f.ModTime.IsZero() {
			if err := os.Chtimes(path, f.ModTime, f.ModTime); err != nil {
				t.Fatalf("setting times on %s: %v", path, err)
			}
		}
	}
	return root
}

// DefaultMediaTree returns the standard fixture layout used across the
// scanner and feed tests: a handful of media files, one sidecar text
// description, and two subdirectories.
func DefaultMediaTree(t *testing.T) string {
	t.Helper()

	return WriteTree(t, []MediaFile{
		{Path: "1.mp3", Content: "mp3"},
		{Path: "1.mp4", Content: "mp4"},
		{Path: "1.ogg", Content: "ogg"},
		{Path: "2.MP3", Content: "mp3"},
		{Path: "1.txt", Content: "Description of episode one."},
		{Path: "subdir_1/2.MP4", Content: "mp4"},
		{Path: "subdir_1/3.mp3", Content: "mp3"},
		{Path: "subdir_2/4.mp4", Content: "mp4"},
		{Path: "subdir_2/5.mp3", Content: "mp3"},
	})
}

// RelPaths strips the root prefix from absolute paths so expectations can
// be written portably.
func RelPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("making %s relative to %s: %v", p, root, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

// Symlink creates a symbolic link and skips the test when the platform
// does not support it.
func Symlink(t *testing.T, oldname, newname string) {
	t.Helper()

	if err := os.Symlink(oldname, newname); err != nil {
		if strings.Contains(err.Error(), "privilege") {
			t.Skipf("symlinks not supported: %v", err)
		}
		t.Fatalf("creating symlink %s -> %s: %v", newname, oldname, err)
	}
}
