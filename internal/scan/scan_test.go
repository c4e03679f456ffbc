package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amsehili/genrss/internal/testutil"
)

func paths(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func TestScan_Flat(t *testing.T) {
	root := testutil.DefaultMediaTree(t)

	files, err := Scan(root, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"1.mp3", "1.mp4", "1.ogg", "2.MP3"},
		testutil.RelPaths(t, root, paths(files)))
}

func TestScan_Recursive(t *testing.T) {
	root := testutil.DefaultMediaTree(t)

	files, err := Scan(root, Options{Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"1.mp3", "1.mp4", "1.ogg", "2.MP3",
		"subdir_1/2.MP4", "subdir_1/3.mp3",
		"subdir_2/4.mp4", "subdir_2/5.mp3",
	}, testutil.RelPaths(t, root, paths(files)))
}

func TestScan_ExtensionFilter(t *testing.T) {
	root := testutil.DefaultMediaTree(t)

	tests := []struct {
		name       string
		extensions []string
		recursive  bool
		expected   []string
	}{
		{
			name:       "single extension, flat",
			extensions: []string{"mp3"},
			expected:   []string{"1.mp3", "2.MP3"},
		},
		{
			name:       "multiple extensions, recursive",
			extensions: []string{"mp3", "ogg"},
			recursive:  true,
			expected: []string{
				"1.mp3", "1.ogg", "2.MP3",
				"subdir_1/3.mp3", "subdir_2/5.mp3",
			},
		},
		{
			name:       "case-insensitive match",
			extensions: []string{"mp4"},
			recursive:  true,
			expected:   []string{"1.mp4", "subdir_1/2.MP4", "subdir_2/4.mp4"},
		},
		{
			name:       "glob pattern against base name",
			extensions: []string{"[12].mp?"},
			recursive:  true,
			expected:   []string{"1.mp3", "1.mp4", "2.MP3", "subdir_1/2.MP4"},
		},
		{
			name:       "duplicate patterns do not duplicate files",
			extensions: []string{"mp3", ".mp3"},
			expected:   []string{"1.mp3", "2.MP3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Scan(root, Options{
				Recursive:  tt.recursive,
				Extensions: tt.extensions,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, testutil.RelPaths(t, root, paths(files)))
		})
	}
}

func TestScan_ExcludesSidecarText(t *testing.T) {
	root := testutil.DefaultMediaTree(t)

	files, err := Scan(root, Options{Recursive: true})
	require.NoError(t, err)
	for _, f := range files {
		assert.NotContains(t, f.Path, ".txt")
	}

	// Even an explicit txt pattern yields nothing
	files, err = Scan(root, Options{Extensions: []string{"txt"}})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScan_SkipsDotfilesInFlatMode(t *testing.T) {
	root := testutil.WriteTree(t, []testutil.MediaFile{
		{Path: "1.mp3", Content: "mp3"},
		{Path: ".hidden.mp3", Content: "mp3"},
	})

	files, err := Scan(root, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.mp3"}, testutil.RelPaths(t, root, paths(files)))
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}

func TestScan_NotADirectory(t *testing.T) {
	root := testutil.WriteTree(t, []testutil.MediaFile{{Path: "1.mp3"}})
	_, err := Scan(filepath.Join(root, "1.mp3"), Options{})
	assert.Error(t, err)
}

func TestScan_EmptyResultIsNotAnError(t *testing.T) {
	files, err := Scan(t.TempDir(), Options{Recursive: true})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScan_SortByModTime(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	root := testutil.WriteTree(t, []testutil.MediaFile{
		{Path: "a.mp3", Content: "mp3", ModTime: base.Add(-48 * time.Hour)},
		{Path: "b.mp3", Content: "mp3", ModTime: base},
		{Path: "c.mp3", Content: "mp3", ModTime: base.Add(-24 * time.Hour)},
	})

	files, err := Scan(root, Options{SortByModTime: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.mp3", "c.mp3", "a.mp3"},
		testutil.RelPaths(t, root, paths(files)))
}

func TestScan_FollowSymlinks(t *testing.T) {
	root := testutil.WriteTree(t, []testutil.MediaFile{
		{Path: "media/1.mp3", Content: "mp3"},
		{Path: "extra/2.mp3", Content: "mp3"},
	})
	testutil.Symlink(t, filepath.Join(root, "extra"), filepath.Join(root, "media", "linked"))

	// Without following, the linked directory is ignored
	files, err := Scan(filepath.Join(root, "media"), Options{Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.mp3"},
		testutil.RelPaths(t, filepath.Join(root, "media"), paths(files)))

	// With following, its files are listed through the link
	files, err = Scan(filepath.Join(root, "media"), Options{Recursive: true, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.mp3", "linked/2.mp3"},
		testutil.RelPaths(t, filepath.Join(root, "media"), paths(files)))
}

func TestScan_SymlinkCycle(t *testing.T) {
	root := testutil.WriteTree(t, []testutil.MediaFile{
		{Path: "media/1.mp3", Content: "mp3"},
	})
	// Link back to the parent to create a cycle
	testutil.Symlink(t, root, filepath.Join(root, "media", "loop"))

	done := make(chan struct{})
	var files []File
	var err error
	go func() {
		files, err = Scan(filepath.Join(root, "media"), Options{Recursive: true, FollowSymlinks: true})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("scan did not terminate on a symlink cycle")
	}

	require.NoError(t, err)
	assert.NotEmpty(t, files)
}

func TestScan_SymlinkedFileInFlatMode(t *testing.T) {
	root := testutil.WriteTree(t, []testutil.MediaFile{
		{Path: "media/1.mp3", Content: "mp3"},
		{Path: "other/2.mp3", Content: "mp3"},
	})
	testutil.Symlink(t, filepath.Join(root, "other", "2.mp3"), filepath.Join(root, "media", "2.mp3"))

	files, err := Scan(filepath.Join(root, "media"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.mp3", "2.mp3"},
		testutil.RelPaths(t, filepath.Join(root, "media"), paths(files)))

	_ = os.Remove(filepath.Join(root, "other", "2.mp3"))
}
