// Command witnessgen computes zero-knowledge-ready witnesses for captured
// HTTP+JSON traffic.
//
// generate parses a manifest describing which request/response headers and
// JSON path to commit to, binds it to a ciphertext digest, and emits the
// ten-element public-input vector a downstream circuit consumes.
//
// serve runs a status/metrics HTTP server for a long-lived witness-generator
// instance.
//
// Usage:
//
//	witnessgen generate --manifest manifest.json --capture response.raw
//	witnessgen serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "witnessgen",
		Short: "Generate zero-knowledge witnesses for captured HTTP+JSON traffic",
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newServeCmd())
	return root
}
