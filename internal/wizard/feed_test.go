package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "mp3", want: []string{"mp3"}},
		{name: "several", in: "mp3,mp4,avi,ogg", want: []string{"mp3", "mp4", "avi", "ogg"}},
		{name: "whitespace and blanks", in: " mp3, ,mp4,", want: []string{"mp3", "mp4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseExtensions(tt.in))
		})
	}
}

func TestBuildConfig(t *testing.T) {
	cfg := BuildConfig(&Answers{
		Host:        " http://example.com/media ",
		Title:       "My Cast",
		Description: "Recordings",
		Image:       "cover.png",
		Extensions:  "mp3, ogg",
		Recursive:   true,
		UseMetadata: true,
	})

	assert.Equal(t, "1.0", cfg.Version)
	assert.Equal(t, "http://example.com/media", cfg.Host)
	assert.Equal(t, "My Cast", cfg.Title)
	assert.Equal(t, []string{"mp3", "ogg"}, cfg.Extensions)
	assert.True(t, cfg.Recursive)
	assert.True(t, cfg.UseMetadata)
	assert.NoError(t, cfg.Validate())
}

func TestRun_RequiresTerminal(t *testing.T) {
	w := &FeedWizard{isTerminal: func() bool { return false }}

	err := w.Run("", false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
