package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the calculator to AI assistants",
	Long: `Serve the pooling calculator over the Model Context Protocol (MCP) so
an assistant can convert concentrations and build pooling plans.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator tools",
	Long: `Serve calculate_molarity, compute_pool, recommend_strategy,
compute_hierarchical and compute_prepools, plus the current settings as
resources. Omitted tool parameters come from 'poolcalc settings'.

The server speaks JSON-RPC over stdio unless --port is given, in which
case it serves the streamable HTTP transport on that port.

Examples:
  # Stdio mode (default)
  poolcalc mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  poolcalc mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "poolcalc": {
        "command": "/path/to/poolcalc",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Pooling:  poolingService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
