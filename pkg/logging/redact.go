package logging

import (
	"os"
	"regexp"
	"strings"
)

// Placeholder tokens substituted into logged text.
const (
	pathToken   = "[path]"
	secretToken = "[REDACTED]"
)

// secretEnvVars lists environment variables whose values must never
// reach the log file.
var secretEnvVars = []string{
	"ANTHROPIC_API_KEY",
	"OPENAI_API_KEY",
	"GITHUB_TOKEN",
	"NPM_TOKEN",
}

var (
	// Absolute POSIX paths of at least two segments.
	posixPathPattern = regexp.MustCompile(`(?:/[\w.@~-]+){2,}/?`)
	// Windows drive-letter paths.
	windowsPathPattern = regexp.MustCompile(`[A-Za-z]:\\[^\s"':]+`)
	// Runs of tokens left behind when home replacement and the path
	// patterns both fire on the same fragment.
	tokenRunPattern = regexp.MustCompile(`(?:\[path\])+`)
)

// Redactor scrubs filesystem layout and secret values from text before
// it is written to logs or shown in error messages.
type Redactor struct {
	home    string
	secrets []string
}

// NewRedactor builds a redactor from the current environment.
func NewRedactor() *Redactor {
	home, _ := os.UserHomeDir()
	var secrets []string
	for _, name := range secretEnvVars {
		if v := os.Getenv(name); v != "" {
			secrets = append(secrets, v)
		}
	}
	return &Redactor{home: home, secrets: secrets}
}

// Redact replaces secret values and path fragments in text with
// placeholder tokens. Returns text unchanged when nothing matches.
func (r *Redactor) Redact(text string) string {
	for _, secret := range r.secrets {
		text = strings.ReplaceAll(text, secret, secretToken)
	}
	if r.home != "" {
		text = strings.ReplaceAll(text, r.home, pathToken)
	}
	text = posixPathPattern.ReplaceAllString(text, pathToken)
	text = windowsPathPattern.ReplaceAllString(text, pathToken)
	return tokenRunPattern.ReplaceAllString(text, pathToken)
}
