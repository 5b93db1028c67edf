package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the maccal application
var rootCmd = &cobra.Command{
	Use:   "maccal",
	Short: "MCP server for the macOS Calendar application",
	Long: `maccal exposes macOS Calendar operations as MCP (Model Context Protocol)
tools for AI assistants. Every tool call is translated into an AppleScript
program executed against the Calendar application via osascript.

It can run as:
  - An MCP server over stdio (default) or streamable HTTP
  - A terminal diagnostic via the check command`,
	SilenceUsage: true,
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
	rootCmd.SetVersionTemplate(`{{printf "maccal version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
