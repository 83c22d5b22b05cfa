package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vidpeek/internal/entity"
	"vidpeek/internal/service"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "resolve <url>",
		Short:         "Print the metadata and download options for a video URL",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, nil)
			if err != nil {
				return err
			}

			meta, err := a.svc.Resolve(cmd.Context(), args[0])
			if err != nil {
				return &ExitError{Code: ExitResolveError, Err: errors.New(service.ResolveMessage(err))}
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(meta)
			}

			return printMetadata(cmd.OutOrStdout(), meta)
		},
	}

	cmd.Flags().Bool("json", false, "Print the metadata as JSON")

	return cmd
}

func printMetadata(w io.Writer, meta entity.VideoMetadata) error {
	st := newStyles(w)

	fmt.Fprintln(w, st.Title.Render(meta.Title))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Author:\t%s\n", meta.Author)
	fmt.Fprintf(tw, "Duration:\t%s\n", meta.Duration)
	fmt.Fprintf(tw, "Thumbnail:\t%s\n", meta.ThumbnailRef)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "FORMAT\tLABEL\tSIZE")

	for _, f := range meta.Formats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Value, f.Label, f.Size())
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, st.Faint.Render("download with: vidpeek download <url> <format>"))

	return err
}
