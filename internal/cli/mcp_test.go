package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/chaz8081/claude-forge/internal/mcp"
	"github.com/chaz8081/claude-forge/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvPairs(t *testing.T) {
	env, err := parseEnvPairs([]string{"TOKEN=abc", "EMPTY=", "URL=postgres://u:p@h/db?x=1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"TOKEN": "abc", "EMPTY": "", "URL": "postgres://u:p@h/db?x=1"}, env)

	_, err = parseEnvPairs([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseEnvPairs([]string{"=x"})
	assert.Error(t, err)

	env, err = parseEnvPairs(nil)
	require.NoError(t, err)
	assert.Nil(t, env)
}

func TestFormatServerList(t *testing.T) {
	var b bytes.Buffer
	formatServerList(&b, mcp.Essential(), map[string]bool{"git": true})
	assert.Equal(t, "Essential:\n"+
		"    filesystem     Access local file system\n"+
		"  ✓ git            Git repository operations\n", b.String())
}

func TestMCPCommands(t *testing.T) {
	env := setupCLI(t)
	path := filepath.Join(env.dir, target.MCPPath())

	require.NoError(t, env.run(t, "mcp", "add", "github", "--env", "GITHUB_PERSONAL_ACCESS_TOKEN=ghp_x"))
	require.NoError(t, env.run(t, "mcp", "add", "postgres", "--args", "postgresql://localhost/app"))
	assert.NotContains(t, env.out.String(), "Set GITHUB_PERSONAL_ACCESS_TOKEN", "no warning for provided env")

	f, err := mcp.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"github", "postgres"}, f.Names())
	assert.Equal(t, "ghp_x", f.Servers["github"].Env["GITHUB_PERSONAL_ACCESS_TOKEN"])
	assert.Equal(t, "postgresql://localhost/app", f.Servers["postgres"].Args[len(f.Servers["postgres"].Args)-1])

	err = env.run(t, "mcp", "add", "github")
	assert.ErrorContains(t, err, "already configured")
	require.NoError(t, env.run(t, "mcp", "add", "github", "--force"))

	assert.ErrorContains(t, env.run(t, "mcp", "add", "nope"), "unknown MCP server")

	env.out.Reset()
	require.NoError(t, env.run(t, "mcp", "list", "--installed"))
	assert.Contains(t, env.out.String(), "✓ github")
	assert.NotContains(t, env.out.String(), "filesystem")

	require.NoError(t, env.run(t, "mcp", "remove", "postgres"))
	assert.ErrorContains(t, env.run(t, "mcp", "remove", "postgres"), "not configured")

	env.out.Reset()
	require.NoError(t, env.run(t, "mcp", "show"))
	assert.Contains(t, env.out.String(), `"mcpServers"`)
	assert.NotContains(t, env.out.String(), "postgres")
}

func TestMCPListCommand_Category(t *testing.T) {
	env := setupCLI(t)

	require.NoError(t, env.run(t, "mcp", "list", "--category", "database"))
	out := env.out.String()
	assert.Contains(t, out, "postgres")
	assert.Contains(t, out, "sqlite")
	assert.NotContains(t, out, "github")

	assert.ErrorContains(t, env.run(t, "mcp", "list", "-c", "games"), "unknown category")
}

func TestMCPSearchAndShowEntry(t *testing.T) {
	env := setupCLI(t)

	require.NoError(t, env.run(t, "mcp", "search", "BROWSER"))
	assert.Contains(t, env.out.String(), "puppeteer")

	env.out.Reset()
	require.NoError(t, env.run(t, "mcp", "show", "fetch"))
	assert.Contains(t, env.out.String(), "mcp-server-fetch")
}
