package probe

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amsehili/genrss/internal/executor"
	"github.com/amsehili/genrss/internal/testutil"
)

// stubRunner is a stub implementation of Runner for testing
type stubRunner struct {
	results    map[string]*executor.ExecResult
	executions []string
}

func newStubRunner() *stubRunner {
	return &stubRunner{results: make(map[string]*executor.ExecResult)}
}

func (s *stubRunner) Execute(command string, args []string, _ executor.ExecOptions) (*executor.ExecResult, error) {
	key := command
	if len(args) > 0 {
		key += " " + strings.Join(args, " ")
	}
	s.executions = append(s.executions, key)

	if result, ok := s.results[command]; ok {
		return result, nil
	}
	return &executor.ExecResult{
		ExitCode: -1,
		Error:    &executor.ExecError{Type: executor.ErrorTypeCommandNotFound, Command: command},
	}, nil
}

func (s *stubRunner) set(command, stdout string, exitCode int) {
	s.results[command] = &executor.ExecResult{Stdout: stdout, ExitCode: exitCode}
}

func TestSoxProber(t *testing.T) {
	tests := []struct {
		name     string
		stdout   string
		exitCode int
		want     int
		wantOK   bool
	}{
		{name: "float seconds", stdout: "7.140000\n", want: 7, wantOK: true},
		{name: "zero for empty file", stdout: "0.000000\n", want: 0, wantOK: true},
		{name: "rounds up", stdout: "6.8\n", want: 7, wantOK: true},
		{name: "non-zero exit", stdout: "", exitCode: 1, wantOK: false},
		{name: "garbage output", stdout: "not a number\n", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newStubRunner()
			runner.set("soxi", tt.stdout, tt.exitCode)

			seconds, ok := NewSoxProber(runner, time.Second).Probe("a.wav")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, seconds)
			}
			assert.Equal(t, []string{"soxi -D a.wav"}, runner.executions)
		})
	}
}

func TestSoxProber_ToolMissing(t *testing.T) {
	runner := newStubRunner()

	_, ok := NewSoxProber(runner, time.Second).Probe("a.wav")
	assert.False(t, ok)
}

func TestFFProbeProber(t *testing.T) {
	runner := newStubRunner()
	runner.set("ffprobe", "128.937000\n", 0)

	seconds, ok := NewFFProbeProber(runner, time.Second).Probe("a.mp4")
	assert.True(t, ok)
	assert.Equal(t, 129, seconds)
	assert.Equal(t,
		[]string{"ffprobe -i a.mp4 -show_entries format=duration -v quiet -of csv=p=0"},
		runner.executions)
}

func TestFFProbeProber_TimedOut(t *testing.T) {
	runner := newStubRunner()
	runner.results["ffprobe"] = &executor.ExecResult{TimedOut: true}

	_, ok := NewFFProbeProber(runner, time.Second).Probe("a.mp4")
	assert.False(t, ok)
}

func TestMP3Prober_DeclinesNonMP3(t *testing.T) {
	_, ok := NewMP3Prober().Probe("a.ogg")
	assert.False(t, ok)
}

func TestMP3Prober_DeclinesInvalidData(t *testing.T) {
	root := testutil.WriteTree(t, []testutil.MediaFile{
		{Path: "fake.mp3", Content: "this is not an mpeg stream"},
	})

	_, ok := NewMP3Prober().Probe(filepath.Join(root, "fake.mp3"))
	assert.False(t, ok)
}

func TestMP3Prober_DeclinesMissingFile(t *testing.T) {
	_, ok := NewMP3Prober().Probe(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.False(t, ok)
}

func TestChain_FallsThroughInOrder(t *testing.T) {
	root := testutil.WriteTree(t, []testutil.MediaFile{
		{Path: "fake.mp3", Content: "junk"},
	})
	path := filepath.Join(root, "fake.mp3")

	// MP3 scan declines (junk), soxi declines (exit 1), ffprobe answers
	runner := newStubRunner()
	runner.set("soxi", "", 2)
	runner.set("ffprobe", "12.2\n", 0)

	chain := NewChain(runner, time.Second)
	seconds, ok := chain.Duration(path)
	assert.True(t, ok)
	assert.Equal(t, 12, seconds)

	assert.Len(t, runner.executions, 2)
	assert.Contains(t, runner.executions[0], "soxi")
	assert.Contains(t, runner.executions[1], "ffprobe")
}

func TestChain_FirstAnswerWins(t *testing.T) {
	runner := newStubRunner()
	runner.set("soxi", "4.0\n", 0)
	runner.set("ffprobe", "99.0\n", 0)

	chain := NewChain(runner, time.Second)
	seconds, ok := chain.Duration("a.wav")
	assert.True(t, ok)
	assert.Equal(t, 4, seconds)

	// ffprobe never ran
	assert.Equal(t, []string{"soxi -D a.wav"}, runner.executions)
}

func TestChain_AllDecline(t *testing.T) {
	chain := NewChain(newStubRunner(), time.Second)

	_, ok := chain.Duration("a.avi")
	assert.False(t, ok)
}

func TestChainWith_CustomOrder(t *testing.T) {
	runner := newStubRunner()
	runner.set("ffprobe", "3.0\n", 0)

	chain := NewChainWith(NewFFProbeProber(runner, time.Second))
	seconds, ok := chain.Duration("a.mkv")
	assert.True(t, ok)
	assert.Equal(t, 3, seconds)
}
