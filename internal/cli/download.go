package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"vidpeek/internal/consts"
	"vidpeek/internal/errs"
	"vidpeek/internal/service"
)

func newDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "download <url> <format>",
		Short:         "Run a simulated download of a video in one of its formats",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rawURL, format := args[0], args[1]

			a, err := newApp(cmd, nil)
			if err != nil {
				return err
			}

			meta, err := a.svc.Resolve(ctx, rawURL)
			if err != nil {
				return &ExitError{Code: ExitResolveError, Err: errors.New(service.ResolveMessage(err))}
			}

			if _, ok := meta.Format(format); !ok {
				err := fmt.Errorf("%w: %q", errs.ErrUnknownFormat, format)
				a.log.WarnContext(ctx, "download", slog.Any("error", err))

				return &ExitError{Code: ExitTransferError, Err: errors.New(service.TransferMessage(err))}
			}

			if _, err := a.svc.Download(ctx, rawURL, format); err != nil {
				return &ExitError{Code: ExitTransferError, Err: errors.New(service.TransferMessage(err))}
			}

			fmt.Fprintln(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).Success.Render(consts.MsgTransferCompleted))

			return nil
		},
	}
}
