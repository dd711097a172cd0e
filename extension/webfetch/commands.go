// commands.go implements "swissknife fetch".

package webfetch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/internal/log"
)

// Flag names for the fetch command.
const (
	flagFormat = "format"
)

var formats = map[string]format{
	"raw":      formatRaw,
	"html":     formatHTML,
	"markdown": formatMarkdown,
	"summary":  formatSummary,
}

var toolNames = map[format]string{
	formatRaw:      "get_raw_text",
	formatHTML:     "get_rendered_html",
	formatMarkdown: "get_markdown",
	formatSummary:  "get_markdown_summary",
}

// Commands returns the fetch command.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a web page as text, HTML or Markdown",
		Long: `Fetch a web page.

  swissknife fetch https://go.dev/doc/                 # markdown
  swissknife fetch https://go.dev/doc/ -f summary      # without header, nav and footer
  swissknife fetch https://api.example.com/x.json -f raw

Formats: raw, html, markdown, summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name, _ := c.Flags().GetString(flagFormat)
			f, ok := formats[name]
			if !ok {
				return fmt.Errorf("unknown format %q (valid: raw, html, markdown, summary)", name)
			}

			rawURL := args[0]
			out, err := e.get(c.Context(), rawURL, f)
			log.Event("cli:"+toolNames[f], "fetch").
				Detail("url", rawURL).
				Detail("bytes", len(out)).
				Write(err)
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"url": rawURL, "format": name, "content": out})
			}
			fmt.Fprintln(cmd.Out(), out)
			return nil
		},
	}
	c.Flags().StringP(flagFormat, "f", "markdown", "Output format: raw, html, markdown, summary")
	return []*cobra.Command{c}
}
