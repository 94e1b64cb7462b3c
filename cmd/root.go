// Package cmd implements the CLI commands for coursepipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coursepipe",
	Short: "coursepipe — download course pages as callout-rich notes",
	Long: `coursepipe fetches course pages from a learning platform, classifies
their content into semantic sections, and renders each page as extended
markdown with callout blocks, standalone HTML, plain text, or PDF.

Usage:
  coursepipe download <url>... [flags]`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
