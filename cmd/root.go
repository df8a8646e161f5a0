package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/gworkspace-mcp/internal/google"
)

// Process exit codes
const (
	ExitCodeError              = 1
	ExitCodeMissingCredentials = 1
)

// rootCmd represents the base command for the gworkspace-mcp application
var rootCmd = &cobra.Command{
	Use:   "gworkspace-mcp",
	Short: "MCP server for Google Docs, Sheets, Drive and Gmail",
	Long: `gworkspace-mcp exposes Google Docs, Sheets, Drive files and comments, and
Gmail messages, threads and labels as Model Context Protocol tools.

It authenticates with a single Google account using an OAuth client ID,
client secret and refresh token taken from the environment:
  GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REFRESH_TOKEN`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gworkspace-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	var missing *google.MissingCredentialsError
	if errors.As(err, &missing) {
		return ExitCodeMissingCredentials
	}
	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
