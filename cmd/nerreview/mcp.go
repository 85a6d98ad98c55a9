package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/tool"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the normalization tool over MCP stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := mcp.NewServer(&mcp.Implementation{Name: "nerreview", Version: version}, nil)
			mcp.AddTool(server, tool.MetadataNormalizeExtraction, tool.NormalizeExtraction)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
