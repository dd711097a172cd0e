package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes(t *testing.T) {
	env := newTestEnv(t)
	env.note("daily/monday.md", "# Monday\n")

	out := env.run("notes", "search", "mon")
	env.equals(out, "daily/monday.md")

	out = env.run("notes", "read", "daily/monday.md")
	env.contains(out, "daily/monday.md:\n# Monday")

	out = env.runStdin("# Plan\n", "notes", "write", "plan.md")
	env.equals(out, "Successfully wrote plan.md (7 bytes)")
	assert.Equal(t, "# Plan\n", env.read("plan.md"))

	out = env.runStdin("# Plan v2\n", "notes", "write", "plan.md", "--diff")
	env.contains(out, "Successfully updated plan.md")
	env.contains(out, "+ # Plan v2")
}

func TestNotes_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.note("a.md", "alpha")

	var res struct {
		Paths   []string `json:"paths"`
		Omitted int      `json:"omitted"`
	}
	require.NoError(t, json.Unmarshal([]byte(env.run("notes", "search", "a", "-o", "json")), &res))
	assert.Equal(t, []string{"a.md"}, res.Paths)
	assert.Zero(t, res.Omitted)
}

func TestNotes_WriteJSON(t *testing.T) {
	env := newTestEnv(t)
	env.note("plan.md", "one\ntwo\n")

	var res struct {
		Path    string `json:"path"`
		Updated bool   `json:"updated"`
		Added   int    `json:"added"`
		Removed int    `json:"removed"`
	}
	out := env.runStdin("one\nthree\nfour\n", "notes", "write", "plan.md", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "plan.md", res.Path)
	assert.True(t, res.Updated)
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 1, res.Removed)
}

func TestNotes_ReadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.note("a.md", "alpha")

	out, err := env.runErr("notes", "read", "a.md", "missing.md")
	assert.Error(t, err)
	env.contains(out, "a.md:\nalpha")
	env.contains(out, "1 of 2 notes could not be read")
}

func TestNotes_Denied(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runStdinErr("x", "notes", "write", ".obsidian/app.json")
	assert.Error(t, err)
	env.contains(out, "access denied")
}

func TestVaultErrors(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("tools", "--vault-path", filepath.Join(env.dir, "missing"))
	assert.Error(t, err)
	env.contains(out, "invalid vault configuration")

	out, err = env.runErr("tools", "--vault-path", filepath.Join(env.vault, ".hidden"))
	assert.Error(t, err)
	env.contains(out, "invalid vault configuration")
}

func TestVaultPriority(t *testing.T) {
	env := newTestEnv(t)
	other := t.TempDir()
	env.note("from-env.md", "")

	// --vault-path beats SWISSKNIFE_VAULT
	out := env.run("notes", "search", "from-env", "--vault-path", other)
	env.equals(out, "No matches found")

	out = env.run("notes", "search", "from-env")
	env.equals(out, "from-env.md")
}

func TestConfig_VaultPaths(t *testing.T) {
	env := newTestEnv(t).withoutVault()
	env.note("cfg.md", "from config")

	env.run("config", "vault.paths", env.vault)
	out := env.run("config", "vault.paths")
	env.equals(out, env.vault)

	out = env.run("call", "read_notes", `{"paths":["cfg.md"]}`)
	env.contains(out, "from config")
}

func TestConfig_InvalidKey(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("config", "no.such.key", "x")
	assert.Error(t, err)
}

func TestDisabledModule(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("notes", "search", "x", "--disable", "notes")
	assert.Error(t, err)
	env.contains(out, "module notes is not enabled")

	env.run("config", "modules.disabled", "datetime")
	_, err = env.runErr("datetime")
	assert.Error(t, err)
}

func TestDocgen(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("docgen", "--language", "Japanese")
	env.contains(out, "product.md")
	env.contains(out, "Write all three documents in Japanese.")
}

func TestGuide(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("guide")
	env.contains(out, "# swissknife")

	out = env.run("guide", "notes")
	env.contains(out, "search_notes")

	out, err := env.runErr("guide", "nonexistent")
	assert.Error(t, err)
	env.contains(out, "Available:")
}

func TestGuide_BrokenVault(t *testing.T) {
	env := newTestEnv(t)

	// Contextless commands skip vault registration.
	out := env.run("guide", "--vault-path", filepath.Join(env.dir, "missing"))
	env.contains(out, "# swissknife")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("version")
	env.contains(out, "Build Tag:")
	env.contains(out, "Go Version:")
}

func TestLog(t *testing.T) {
	env := newTestEnv(t)
	env.note("a.md", "alpha")

	env.run("call", "read_notes", `{"paths":["a.md"]}`)

	out := env.run("log")
	env.contains(out, "cli:read_notes")
}

func TestVacuum(t *testing.T) {
	env := newTestEnv(t)
	env.note("a.md", "alpha")
	env.run("call", "read_notes", `{"paths":["a.md"]}`)

	out := env.run("vacuum", "--dry-run")
	env.equals(out, "0 log entries older than 30d")

	out = env.run("vacuum", "--older-than", "0h", "--dry-run")
	env.equals(out, "1 log entries older than 0h")

	out = env.run("vacuum", "--older-than", "0h", "--force")
	env.equals(out, "Deleted 1 log entries")

	_, err := env.runErr("vacuum", "--older-than", "soon")
	assert.Error(t, err)
}
