// Package cli implements the docqa command line tool.
package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"docqa/internal/client"
)

const defaultServer = "http://localhost:8000"

type options struct {
	server  string
	timeout time.Duration
}

func (o *options) client() *client.Client {
	return client.New(o.server, o.timeout)
}

// NewRootCmd builds the docqa command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "docqa",
		Short: "Extract text from documents and ask questions about them",
		Long: `docqa talks to a running docqa server to upload documents and ask questions
answered from their text. The extract command runs locally and needs no server.`,
		SilenceUsage: true,
	}

	server := os.Getenv("DOCQA_SERVER")
	if server == "" {
		server = defaultServer
	}
	root.PersistentFlags().StringVarP(&opts.server, "server", "s", server, "Base URL of the docqa server (env DOCQA_SERVER)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Request timeout, 0 for none")

	root.AddCommand(
		newExtractCmd(),
		newUploadCmd(opts),
		newAskCmd(opts),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
