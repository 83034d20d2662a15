package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/feedworks/sentiserver/internal/commands"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "sentiserver",
		Short: "Asynchronous sentiment-analysis pipeline for user-submitted text",
		Long: `Sentiserver accepts text submissions, persists them, and scores their
sentiment asynchronously. In production the handlers run as Lambdas over
DynamoDB and Kinesis; the serve command runs the same pipeline locally
behind one HTTP server with an in-process worker.`,
		Version: version,
	}

	root.AddCommand(
		commands.NewServeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
