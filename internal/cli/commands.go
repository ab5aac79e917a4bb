package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docqa/internal/extract"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract FILE",
		Short: "Print the text the server would store for FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			ct := extract.ResolveContentType(mime.TypeByExtension(filepath.Ext(args[0])), data)
			text, err := extract.New().Extract(cmd.Context(), data, ct)
			if err != nil {
				return fmt.Errorf("extract %s: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newUploadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload FILE and print its document id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			id, err := opts.client().Upload(cmd.Context(), filepath.Base(args[0]), mime.TypeByExtension(filepath.Ext(args[0])), f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}
}

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "ask DOC_ID QUESTION...",
		Short:   "Ask a question about an uploaded document",
		Example: `  docqa ask doc_0192... "What is the notice period?"`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := opts.client().Ask(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
			return err
		},
	}
}
