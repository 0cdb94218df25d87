package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Validate a CUE configuration file and print the result.

Omitted fields take their defaults. Without --config the defaults are
printed.

Examples:
  tickguess config
  tickguess config --config game.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return newFormatter(rootOpts, cmd).Success(cfg)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "start:      %dms\n", cfg.Cadences.StartMS)
			fmt.Fprintf(w, "half:       %dms\n", cfg.Cadences.HalfMS)
			fmt.Fprintf(w, "quarter:    %dms\n", cfg.Cadences.QuarterMS)
			fmt.Fprintf(w, "bound:      %d\n", cfg.Bound)
			fmt.Fprintf(w, "auto_reset: %t\n", cfg.AutoReset)
			traceDB := cfg.TraceDB
			if traceDB == "" {
				traceDB = "(memory)"
			}
			fmt.Fprintf(w, "trace_db:   %s\n", traceDB)
			return nil
		},
	}
}
