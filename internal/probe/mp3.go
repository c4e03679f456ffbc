package probe

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tcolgate/mp3"
)

// MP3Prober sums MP3 frame durations in-process. It is first in the
// chain because it needs no subprocess, but it only understands .mp3
// files.
type MP3Prober struct{}

// NewMP3Prober creates an MP3 frame prober
func NewMP3Prober() *MP3Prober {
	return &MP3Prober{}
}

// Name implements Prober
func (p *MP3Prober) Name() string {
	return "mp3"
}

// Probe implements Prober
func (p *MP3Prober) Probe(path string) (int, bool) {
	if strings.ToLower(filepath.Ext(path)) != ".mp3" {
		return 0, false
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	dec := mp3.NewDecoder(f)
	var frame mp3.Frame
	var skipped int
	var total float64
	frames := 0

	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			if err != io.EOF && frames == 0 {
				// not an MP3 stream after all
				return 0, false
			}
			break
		}
		total += frame.Duration().Seconds()
		frames++
	}

	if frames == 0 {
		return 0, false
	}
	return int(math.Round(total)), true
}
