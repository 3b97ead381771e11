package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gsheets-mcp application
var rootCmd = &cobra.Command{
	Use:   "gsheets-mcp",
	Short: "MCP server for Google Sheets and Google Drive",
	Long: `gsheets-mcp exposes Google Sheets and Google Drive operations as
Model Context Protocol (MCP) tools and resources for AI assistants.

It authenticates once at startup, using a service account key when one is
configured and falling back to a cached or interactive OAuth flow otherwise,
and then serves a fixed set of spreadsheet tools over stdio or HTTP.`,
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
	rootCmd.SetVersionTemplate(`{{printf "gsheets-mcp version %s\n" .Version}}`)

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
	rootCmd.AddCommand(newVersionCmd())
}
