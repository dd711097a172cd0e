package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	page, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, page, "# swissknife")

	notes, err := Get("notes")
	require.NoError(t, err)
	assert.Contains(t, notes, "search_notes")

	_, err = Get("missing")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"config", "docgen", "notes", "serve", "websearch", "webfetch"}, names)
	assert.NotContains(t, names, "guide")
}
