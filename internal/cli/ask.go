package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tourist-guide/internal/app"
	"tourist-guide/internal/common/errors"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question with weather and attractions",
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

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			resp, err := guide.Orchestrator.Answer(ctx, strings.Join(args, " "))
			if opts.format == formatText {
				if _, werr := fmt.Fprintln(cmd.OutOrStdout(), resp.Message); werr != nil {
					return werr
				}
			} else if werr := writeJSON(cmd.OutOrStdout(), resp); werr != nil {
				return werr
			}

			// domain failures are answers; only infrastructure failures exit non-zero
			switch errors.CodeOf(err) {
			case errors.ErrCodeGeocodingUnavailable, errors.ErrCodeInternal, errors.ErrCodeCancelled:
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 45*time.Second, "Give up after this long")
	return cmd
}
