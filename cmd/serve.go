package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/explicitize/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion tools over MCP on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("serving MCP tools on stdio")
		if err := server.ServeStdio(mcpserver.New(logger).MCP()); err != nil {
			logger.Error("MCP server stopped", zap.Error(err))
			return err
		}
		return nil
	},
}
