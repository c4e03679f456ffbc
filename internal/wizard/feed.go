// Package wizard provides the interactive feed configuration wizard for genrss.
package wizard

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"

	internalconfig "github.com/amsehili/genrss/internal/config"
	"github.com/amsehili/genrss/internal/debug"
	"github.com/amsehili/genrss/pkg/config"
)

// FeedWizard drives the interactive creation of a .genrss.json file
type FeedWizard struct {
	// isTerminal is swappable for tests
	isTerminal func() bool
}

// NewFeedWizard creates a new feed configuration wizard
func NewFeedWizard() *FeedWizard {
	return &FeedWizard{
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Run runs the interactive wizard and writes the configuration to
// outputPath (default .genrss.json in the current directory).
func (w *FeedWizard) Run(outputPath string, force bool) error {
	debug.LogSection("Feed Configuration Wizard")

	if !w.isTerminal() {
		return fmt.Errorf("the configuration wizard requires an interactive terminal")
	}

	if outputPath == "" {
		outputPath = internalconfig.ConfigFileName
	}

	if !force {
		overwrite, err := w.checkExistingConfig(outputPath)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Configuration wizard canceled.")
			return nil
		}
	}

	answers, err := w.ask()
	if err != nil {
		return err
	}

	cfg := BuildConfig(answers)
	if err := internalconfig.Save(cfg, outputPath); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s\n", outputPath)
	fmt.Println("Generate a feed with: genrss -d <media directory>")
	return nil
}

// Answers collects the wizard's raw responses
type Answers struct {
	Host        string
	Title       string
	Description string
	Image       string
	Extensions  string
	Recursive   bool
	UseMetadata bool
}

func (w *FeedWizard) ask() (*Answers, error) {
	questions := []*survey.Question{
		{
			Name: "host",
			Prompt: &survey.Input{
				Message: "Host name (or IP address), optionally with scheme, port and base path:",
				Default: "http://localhost:8080",
				Help:    "Examples: mywebsite.com/media, 192.168.1.12:8080, https://example.com",
			},
		},
		{
			Name: "title",
			Prompt: &survey.Input{
				Message: "Podcast title (empty uses the media directory's name):",
			},
		},
		{
			Name: "description",
			Prompt: &survey.Input{
				Message: "Podcast description:",
			},
		},
		{
			Name: "image",
			Prompt: &survey.Input{
				Message: "Feed image (http(s) URL or path relative to the host):",
			},
		},
		{
			Name: "extensions",
			Prompt: &survey.Input{
				Message: "Media extensions, comma separated (empty means all files):",
				Help:    "Example: mp3,mp4,avi,ogg",
			},
		},
		{
			Name: "recursive",
			Prompt: &survey.Confirm{
				Message: "Scan subdirectories recursively?",
			},
		},
		{
			Name: "usemetadata",
			Prompt: &survey.Confirm{
				Message: "Read item titles from media metadata?",
			},
		},
	}

	var answers Answers
	if err := survey.Ask(questions, &answers); err != nil {
		return nil, fmt.Errorf("wizard aborted: %w", err)
	}
	return &answers, nil
}

func (w *FeedWizard) checkExistingConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return true, nil
	}

	overwrite := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("%s already exists. Overwrite?", path),
	}
	if err := survey.AskOne(prompt, &overwrite); err != nil {
		return false, fmt.Errorf("wizard aborted: %w", err)
	}
	return overwrite, nil
}

// BuildConfig turns wizard answers into a validated configuration value
func BuildConfig(answers *Answers) *config.Config {
	return &config.Config{
		Version:     "1.0",
		Host:        strings.TrimSpace(answers.Host),
		Title:       strings.TrimSpace(answers.Title),
		Description: strings.TrimSpace(answers.Description),
		Image:       strings.TrimSpace(answers.Image),
		Extensions:  ParseExtensions(answers.Extensions),
		Recursive:   answers.Recursive,
		UseMetadata: answers.UseMetadata,
	}
}

// ParseExtensions splits a comma separated extension list, dropping
// blanks
func ParseExtensions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
