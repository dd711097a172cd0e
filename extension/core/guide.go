// guide.go implements the "swissknife guide" command for documentation access.
//
// Separated from extension.go to isolate documentation rendering logic
// including terminal detection and glamour markdown formatting.
//
// Guides are embedded in the binary via the guide package. Terminal output
// gets glamour rendering; pipe/redirect gets raw markdown.

package core

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/swissknife/cmd"
	"github.com/jpl-au/swissknife/guide"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the swissknife usage guide",
		Long: `Outputs the swissknife guide for LLMs and humans.

  swissknife guide           # main guide
  swissknife guide notes     # note tools and the vault sandbox
  swissknife guide webfetch  # web fetch tools`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			fmt.Fprint(cmd.Out(), cmd.RenderMarkdown(content))
			return nil
		},
	}
}
