package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "nana",
	Short:        "nana - infant nap and feed routine service",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API, the MCP endpoint and the report scheduler",
	RunE:  runServe,
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP over stdio as the configured owner",
	RunE:  runMCP,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for an owner",
	RunE:  runToken,
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Generate yesterday's daily reports once and exit",
	RunE:  runReports,
}

var (
	ownerFlag string
	ttlFlag   string
)

func init() {
	tokenCmd.Flags().StringVar(&ownerFlag, "owner", "", "Owner ID to put in the token subject")
	tokenCmd.Flags().StringVar(&ttlFlag, "ttl", "720h", "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("owner")
	rootCmd.AddCommand(serveCmd, mcpCmd, migrateCmd, tokenCmd, reportsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
