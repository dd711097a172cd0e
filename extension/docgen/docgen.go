// Package docgen provides get_software_documentation_prompt, which returns
// instructions for writing a project's product, structure and tech
// steering documents.
package docgen

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/extension"
	"github.com/jpl-au/swissknife/internal/validate"
)

//go:embed prompt.md
var basePrompt string

func init() {
	extension.Register(&Extension{})
}

// Extension implements the docgen extension.
type Extension struct{}

var _ extension.Extension = (*Extension)(nil)

// Name returns "docgen".
func (e *Extension) Name() string { return "docgen" }

// Prompt returns the documentation prompt. A non-empty language adds an
// instruction to write the documents in it.
func Prompt(language string) string {
	p := strings.TrimRight(basePrompt, "\n")
	if language = strings.TrimSpace(language); language != "" {
		p += fmt.Sprintf("\n\nWrite all three documents in %s.", language)
	}
	return p
}

// MCPTools returns get_software_documentation_prompt.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Name: "get_software_documentation_prompt",
		Description: "Get a prompt for creating software project design documents. " +
			"Returns instructions for generating product.md, structure.md, and tech.md files.",
		Action: "read",
		Schema: validate.Schema{Fields: []validate.Field{
			{Name: "language", Kind: validate.String, Description: `Language for the documentation (e.g., "Japanese", "English", "Spanish"). If not specified, defaults to English.`},
		}},
		Handler: func(_ context.Context, _ extension.Context, args validate.Args) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(Prompt(args.String("language"))), nil
		},
	}}
}

// Commands returns the docgen command.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "docgen",
		Short: "Print the steering document prompt",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			lang, _ := c.Flags().GetString(extension.FlagLanguage)
			p := Prompt(lang)
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"prompt": p})
			}
			fmt.Fprintln(cmd.Out(), p)
			return nil
		},
	}
	c.Flags().StringP(extension.FlagLanguage, "l", "", "Language for the documents")
	return []*cobra.Command{c}
}
