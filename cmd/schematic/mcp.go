package main

import (
	"log"

	"github.com/aretw0/schematic/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts schematic as an MCP Server over Standard Input/Output.
This allows AI agents to list kinds, describe them and validate entities as tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, logger, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(cmd.ErrOrStderr())

		logger.Info("starting schematic MCP server (stdio)", "kinds", catalog.Kinds())
		return mcp.NewServer(catalog, logger).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
