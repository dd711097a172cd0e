// The cmd/ package holds CLI integration tests that exercise the full stack:
// flag parsing -> extension init -> dispatcher -> tool handler -> vault.
//
// The binary is built once and every test runs it with HOME pointed at a
// temporary directory, so config and the audit log never touch the real
// user files.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the swissknife binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "swissknife-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "swissknife"
		if os.PathSeparator == '\\' {
			binaryName = "swissknife.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory
	home   string
	vault  string
	binary string
	env    []string // extra variables, later entries win
}

// newTestEnv creates a home directory and a vault, and points
// SWISSKNIFE_VAULT at the vault.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	e := &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		vault:  t.TempDir(),
		binary: buildBinary(t),
	}
	e.env = []string{EnvVault + "=" + e.vault}
	return e
}

// withoutVault clears SWISSKNIFE_VAULT for subsequent runs.
func (e *testEnv) withoutVault() *testEnv {
	e.env = []string{EnvVault + "="}
	return e
}

// note writes a file into the vault.
func (e *testEnv) note(rel, content string) {
	e.t.Helper()
	p := filepath.Join(e.vault, filepath.FromSlash(rel))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0o644))
}

// read returns a vault file's content.
func (e *testEnv) read(rel string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.vault, filepath.FromSlash(rel)))
	require.NoError(e.t, err)
	return string(data)
}

func (e *testEnv) command(stdin string, args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home)
	cmd.Env = append(cmd.Env, e.env...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd
}

// run executes swissknife with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("swissknife %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes swissknife and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command("", args...).CombinedOutput()
	return string(out), err
}

// runStdin executes swissknife with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("swissknife %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes swissknife with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(input, args...).CombinedOutput()
	return string(out), err
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}
