// Package cli holds the vidpeek command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

const (
	ExitOK            = 0
	ExitCLIError      = 1
	ExitResolveError  = 2
	ExitTransferError = 3
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}

	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vidpeek",
		Short:         "Demo video downloader page with stubbed metadata and transfers",
		Long:          "vidpeek serves a page where a video URL can be pasted, previewed with fixed sample metadata and \"downloaded\" through a simulated transfer. Nothing is fetched and nothing is written.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides VIDPEEK_APP_LOG_LEVEL)")
	bindServeFlags(root.Flags())

	root.AddCommand(newServeCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newDownloadCmd())

	return root
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}
