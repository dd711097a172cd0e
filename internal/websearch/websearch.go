// Package websearch runs an external AI search command line (the Gemini CLI
// by default) and returns its answer.
//
// The command is split into argv with shell quoting rules but never run
// through a shell, so the query cannot inject commands. A quota or rate
// limit failure is retried once with the fallback model.
package websearch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
)

// Timeout bounds a single invocation of the search command.
const Timeout = 30 * time.Second

// PromptPrefix asks the CLI to answer with its web search capability.
const PromptPrefix = "WebSearch: "

var (
	// ErrNoCommand is returned by New when the command line is empty.
	ErrNoCommand = errors.New("no web search command configured")

	// ErrNotFound is returned when the command binary cannot be started.
	ErrNotFound = errors.New("Gemini CLI not found. Please install and configure the Gemini CLI tool.")

	// ErrTimeout is returned when the command runs past Timeout.
	ErrTimeout = errors.New("Gemini search timed out after 30 seconds")

	// ErrEmptyResponse is returned when the command prints nothing.
	ErrEmptyResponse = errors.New("Gemini returned empty response")

	// ErrQuota matches failures caused by quota or rate limits.
	ErrQuota = errors.New("quota exceeded")

	// ErrQuotaExhausted is returned when the fallback model hit its quota too.
	ErrQuotaExhausted = errors.New("Gemini API quota exceeded for both Pro and Flash models. Please try again later or check your quota limits.")
)

// quotaMarkers identify quota failures in command output (case-insensitive).
var quotaMarkers = []string{
	"quota exceeded",
	"rate limit",
	"RESOURCE_EXHAUSTED",
	"rateLimitExceeded",
	"Quota exceeded for quota metric",
}

// IsQuota reports whether msg mentions a quota or rate limit failure.
func IsQuota(msg string) bool {
	lower := strings.ToLower(msg)
	for _, m := range quotaMarkers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// Runner executes name with args and returns what it wrote to stdout and
// stderr. Tests substitute a fake.
type Runner func(ctx context.Context, name string, args []string) (stdout, stderr []byte, err error)

// ExecRunner runs the command as a child process.
func ExecRunner(ctx context.Context, name string, args []string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, name, args...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	err := c.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Searcher runs web searches through an external command.
type Searcher struct {
	argv     []string
	fallback string
	timeout  time.Duration
	run      Runner
}

// New parses command into argv. fallback is the model used after a quota
// failure; empty disables the retry. A nil run uses ExecRunner.
func New(command, fallback string, run Runner) (*Searcher, error) {
	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parsing search command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}
	if run == nil {
		run = ExecRunner
	}
	return &Searcher{argv: argv, fallback: fallback, timeout: Timeout, run: run}, nil
}

// Command returns the program the searcher runs.
func (s *Searcher) Command() string { return s.argv[0] }

// Available reports whether the command can be found on PATH.
func (s *Searcher) Available() error {
	if _, err := exec.LookPath(s.argv[0]); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return nil
}

// Search asks the command about query. On a quota failure it retries once
// with the fallback model; if that also hits a quota ErrQuotaExhausted is
// returned.
func (s *Searcher) Search(ctx context.Context, query string) (string, error) {
	out, err := s.once(ctx, query, "")
	if err == nil || !errors.Is(err, ErrQuota) || s.fallback == "" {
		return out, err
	}

	out, err = s.once(ctx, query, s.fallback)
	if errors.Is(err, ErrQuota) {
		return "", ErrQuotaExhausted
	}
	return out, err
}

// Args returns the arguments passed after the program name.
func (s *Searcher) Args(query, model string) []string {
	args := append([]string{}, s.argv[1:]...)
	if model != "" {
		args = append(args, "--model", model)
	}
	return append(args, "--prompt", PromptPrefix+query)
}

func (s *Searcher) once(ctx context.Context, query, model string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stdout, stderr, err := s.run(ctx, s.argv[0], s.Args(query, model))
	errText := strings.TrimSpace(string(stderr))

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "", ErrTimeout
	case ctx.Err() != nil:
		return "", ctx.Err()
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return "", ErrNotFound
	case IsQuota(errText):
		return "", fmt.Errorf("%w: %s", ErrQuota, errText)
	case err != nil && errText != "":
		return "", fmt.Errorf("%s: %w: %s", s.argv[0], err, errText)
	case err != nil:
		return "", fmt.Errorf("%s: %w", s.argv[0], err)
	}

	out := strings.TrimSpace(string(stdout))
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
