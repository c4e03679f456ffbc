// Package probe determines media durations for genrss.
//
// Durations come from a prioritized fallback chain: an in-process MP3
// frame scan first (no subprocess), then soxi, then ffprobe. A prober
// that is unavailable or cannot make sense of a file declines, and the
// next one is tried. The chain yields nothing only when every prober
// declined, in which case the feed item simply carries no duration.
package probe

import (
	"time"

	"github.com/amsehili/genrss/internal/debug"
	"github.com/amsehili/genrss/internal/executor"
)

// Runner abstracts the command executor so probers can be tested with a
// stub.
type Runner interface {
	Execute(command string, args []string, options executor.ExecOptions) (*executor.ExecResult, error)
}

// Prober resolves the duration of a media file in whole seconds.
type Prober interface {
	// Name identifies the prober in debug output
	Name() string
	// Probe returns the duration in seconds, or false when the prober
	// cannot determine it
	Probe(path string) (int, bool)
}

// Chain tries a list of probers in order.
type Chain struct {
	probers []Prober
}

// NewChain builds the default prober chain: MP3 frame scan, soxi,
// ffprobe. The subprocess probers run through runner with the given
// per-file timeout.
func NewChain(runner Runner, timeout time.Duration) *Chain {
	return &Chain{
		probers: []Prober{
			NewMP3Prober(),
			NewSoxProber(runner, timeout),
			NewFFProbeProber(runner, timeout),
		},
	}
}

// NewChainWith builds a chain from an explicit prober list.
func NewChainWith(probers ...Prober) *Chain {
	return &Chain{probers: probers}
}

// Duration resolves the duration of path through the chain.
func (c *Chain) Duration(path string) (int, bool) {
	for _, p := range c.probers {
		seconds, ok := p.Probe(path)
		debug.LogProbe(p.Name(), path, seconds, ok)
		if ok {
			return seconds, true
		}
	}
	return 0, false
}
