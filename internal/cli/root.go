// Package cli implements the tourist-guide-cli commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"tourist-guide/internal/common/config"
	"tourist-guide/internal/common/logger"

	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type options struct {
	configPath string
	format     string
	logLevel   string
}

// NewRootCmd builds the command tree. Each call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "tourist-guide-cli",
		Short:         "Ask travel questions from the terminal",
		Long:          "Parse travel questions or answer them with live weather and attraction lookups.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatJSON && opts.format != formatText {
				return fmt.Errorf("--format must be %q or %q", formatJSON, formatText)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: configs/config.yaml lookup)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format: json or text")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "Log level written to stderr")

	root.AddCommand(newParseCmd(opts), newAskCmd(opts))
	return root
}

func (o *options) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFromFile(o.configPath)
	}
	return config.Load()
}

func (o *options) logger() logger.Logger {
	return logger.NewStructured(o.logLevel, "console")
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
