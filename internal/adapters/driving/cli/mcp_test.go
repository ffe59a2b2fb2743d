package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Structure(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	require.Len(t, mcpCmd.Commands(), 1)
	assert.Equal(t, "serve", mcpCmd.Commands()[0].Use)

	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresPoolingService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	poolingService = nil

	_, _, err := execute("mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pooling service")
}
