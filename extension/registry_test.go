package extension

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/swissknife/internal/config"
	"github.com/jpl-au/swissknife/internal/sandbox"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name string
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return nil }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	assert.Panics(t, func() {
		Register(testExtension{name: name})
	})
}

func TestRegister_PreservesOrder(t *testing.T) {
	Register(testExtension{name: "test-order-b"})
	Register(testExtension{name: "test-order-a"})

	names := Names()
	var ib, ia int
	for i, n := range names {
		switch n {
		case "test-order-b":
			ib = i
		case "test-order-a":
			ia = i
		}
	}
	assert.Less(t, ib, ia, "registration order must be preserved")

	assert.Equal(t, "test-order-a", Get("test-order-a").Name())
	assert.Nil(t, Get("test-order-missing"))
	assert.Len(t, All(), len(names))
}

func TestNewContext_Defaults(t *testing.T) {
	ctx := NewContext(nil, nil)
	require.NotNil(t, ctx.Roots())
	assert.True(t, ctx.Roots().Empty())
	require.NotNil(t, ctx.Config())

	roots, err := sandbox.New(nil)
	require.NoError(t, err)
	cfg := &config.Config{}
	ctx = NewContext(roots, cfg)
	assert.Same(t, roots, ctx.Roots())
	assert.Same(t, cfg, ctx.Config())
}
