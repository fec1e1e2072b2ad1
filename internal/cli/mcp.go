package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/cardscan/internal/tool"
)

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the card parser as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := mcp.NewServer(&mcp.Implementation{Name: "cardscan", Version: a.version}, nil)
			tool.Register(server, a.newParser())
			a.logger.Info("mcp server starting", "transport", "stdio")
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
