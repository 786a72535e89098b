package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "uploadctl",
		Short: "Simple Upload CLI - remote resource metadata client",
		Long: `Simple Upload Command Line Interface

A CLI tool for inspecting remote resources without downloading them.
Probes HTTP, FTP, and cloud storage URLs for content type and size,
and encrypts or decrypts upload tokens.

Configuration is read from the same UPLOAD_* environment variables the
server uses; flags override where noted.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(NewProbeCommand())
	rootCmd.AddCommand(NewTokenCommand())
	rootCmd.AddCommand(NewAuditCommand())

	return rootCmd
}
