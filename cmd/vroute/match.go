package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vroute/internal/demo"
	"github.com/vango-dev/vroute/pkg/router"
)

// matchResult is the JSON form of a resolved URL.
type matchResult struct {
	URL     string            `json:"url"`
	Matched bool              `json:"matched"`
	Pattern string            `json:"pattern,omitempty"`
	Params  map[string]string `json:"params"`
	Search  map[string]string `json:"search"`
}

func matchCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "match <url>",
		Short: "Resolve a URL against the demo route table",
		Long: `Resolve a URL the way the router does and print the matched
pattern, path parameters and search parameters.

Relative URLs are resolved against http://localhost/.

Examples:
  vroute match /users/42
  vroute match "https://example.com/about?ref=nav" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := router.New(demo.Table(), router.WithURLString(args[0]))
			if err != nil {
				return err
			}
			snap := r.Snapshot()
			res := matchResult{
				URL:     snap.URL.String(),
				Matched: snap.Matched(),
				Pattern: snap.Pattern(),
				Params:  snap.Params,
				Search:  snap.Search,
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			pattern := res.Pattern
			if !res.Matched {
				pattern = "(no match)"
			}
			fmt.Fprintf(out, "URL:      %s\n", res.URL)
			fmt.Fprintf(out, "Pattern:  %s\n", pattern)
			fmt.Fprintf(out, "Params:   %s\n", formatPairs(res.Params))
			fmt.Fprintf(out, "Search:   %s\n", formatPairs(res.Search))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func formatPairs(m map[string]string) string {
	if len(m) == 0 {
		return "-"
	}
	pairs := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		pairs = append(pairs, k+"="+m[k])
	}
	return strings.Join(pairs, " ")
}
