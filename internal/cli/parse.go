package cli

import (
	"fmt"
	"strings"

	"tourist-guide/internal/app"
	"tourist-guide/internal/parser"

	"github.com/spf13/cobra"
)

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <question>",
		Short: "Show how a question is understood, without any lookups",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			guide, err := app.New(cfg, opts.logger())
			if err != nil {
				return err
			}
			defer guide.Close()

			pq := guide.Parser.Parse(strings.Join(args, " "))
			if opts.format == formatText {
				_, err := fmt.Fprint(cmd.OutOrStdout(), describeParse(pq))
				return err
			}
			return writeJSON(cmd.OutOrStdout(), pq)
		},
	}
}

func describeParse(pq parser.ParsedQuery) string {
	var b strings.Builder
	switch {
	case !pq.HasLocation():
		b.WriteString("location: none\n")
	case pq.Location.WasCorrected:
		fmt.Fprintf(&b, "location: %s (from %q)\n", pq.Location.Name, pq.Location.Candidate)
	default:
		fmt.Fprintf(&b, "location: %s\n", pq.Location.Name)
	}
	if pq.HasLocation() && len(pq.Location.Suggestions) > 0 {
		fmt.Fprintf(&b, "suggestions: %s\n", strings.Join(pq.Location.Suggestions, ", "))
	}
	fmt.Fprintf(&b, "weather: %t\nplaces: %t\n", pq.Intent.WantsWeather, pq.Intent.WantsPlaces)
	return b.String()
}
