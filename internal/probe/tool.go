package probe

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/amsehili/genrss/internal/executor"
)

// SoxProber asks soxi for the duration. sox is tried before ffprobe
// because it is faster and reports 0 for empty files instead of failing.
type SoxProber struct {
	runner  Runner
	timeout time.Duration
}

// NewSoxProber creates a soxi prober
func NewSoxProber(runner Runner, timeout time.Duration) *SoxProber {
	return &SoxProber{runner: runner, timeout: timeout}
}

// Name implements Prober
func (p *SoxProber) Name() string {
	return "soxi"
}

// Probe implements Prober
func (p *SoxProber) Probe(path string) (int, bool) {
	return runTool(p.runner, p.timeout, "soxi", []string{"-D", path})
}

// FFProbeProber asks ffprobe for the container duration. Last in the
// chain: slowest, but understands the most formats.
type FFProbeProber struct {
	runner  Runner
	timeout time.Duration
}

// NewFFProbeProber creates an ffprobe prober
func NewFFProbeProber(runner Runner, timeout time.Duration) *FFProbeProber {
	return &FFProbeProber{runner: runner, timeout: timeout}
}

// Name implements Prober
func (p *FFProbeProber) Name() string {
	return "ffprobe"
}

// Probe implements Prober
func (p *FFProbeProber) Probe(path string) (int, bool) {
	args := []string{
		"-i", path,
		"-show_entries", "format=duration",
		"-v", "quiet",
		"-of", "csv=p=0",
	}
	return runTool(p.runner, p.timeout, "ffprobe", args)
}

// runTool executes a probe tool and parses its stdout as float seconds.
// A missing tool, non-zero exit, timeout, or unparsable output all make
// the prober decline.
func runTool(runner Runner, timeout time.Duration, command string, args []string) (int, bool) {
	result, err := runner.Execute(command, args, executor.ExecOptions{Timeout: timeout})
	if err != nil || result.Error != nil || result.TimedOut || result.ExitCode != 0 {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(result.Stdout), 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(seconds)), true
}
