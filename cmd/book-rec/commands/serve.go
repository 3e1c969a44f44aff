package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/0x5457/book-rec/cmd/cmdsfx"
	"github.com/spf13/cobra"
)

// NewServeCommand runs the HTTP API
func NewServeCommand(flags *GlobalFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			o := flags.overrides()
			o.Addr = addr
			return withRunner(ctx, o, func(r *cmdsfx.CommandRunner) error {
				return r.RunServe(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address, e.g. :8000")
	return cmd
}
