package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/poolcalc/internal/adapters/driving/mcp"
)

var versionJSON bool

// versionInfo is the --json form of the version command.
type versionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	MCPServer string `json:"mcp_server"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if versionJSON {
			return writeJSON(cmd.OutOrStdout(), versionInfo{
				Version:   version,
				GoVersion: runtime.Version(),
				MCPServer: mcp.ServerName,
			})
		}
		cmd.Printf("poolcalc version %s\n", version)
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output version details as JSON")
	rootCmd.AddCommand(versionCmd)
}
