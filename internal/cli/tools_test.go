package cli

import (
	"errors"
	"testing"

	"github.com/chaz8081/claude-forge/internal/probe"
	"github.com/chaz8081/claude-forge/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatToolCheck(t *testing.T) {
	out := formatToolCheck(probe.Result{"rg": true}, map[string]string{"rg": "ripgrep 14.1.0"})

	assert.Contains(t, out, "✓ rg    Fast text search (ripgrep 14.1.0)")
	assert.Contains(t, out, "✗ fd    Fast file finder, replaces find.")
	assert.Equal(t, 5, countLines(out))
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

func TestOutcomeHelpers(t *testing.T) {
	outcomes := []probe.Outcome{
		{Status: probe.StatusAlreadyInstalled},
		{Status: probe.StatusFailed, Err: errors.New("boom")},
		{Status: probe.StatusInstalled},
	}
	assert.True(t, anyChanged(outcomes))
	assert.Equal(t, 1, failures(outcomes))
	assert.False(t, anyChanged(outcomes[:2]))
}

func TestToolsCheckCommand(t *testing.T) {
	env := setupCLI(t)
	env.exec.Install("rg", "bat")
	env.exec.AddResponse("rg --version", []byte("ripgrep 14.1.0\n-SIMD"), nil)

	require.NoError(t, env.run(t, "tools", "check", "--verbose-versions"))
	out := env.out.String()
	assert.Contains(t, out, "(ripgrep 14.1.0)")
	assert.Contains(t, out, "3 tool(s) missing")
}

func TestToolsInstallCommand(t *testing.T) {
	env := setupCLI(t)
	env.write(t, "forge.yaml", "install_command: pkgx install\n")
	env.exec.Install("rg")

	require.NoError(t, env.run(t, "tools", "install", "--dry-run", "--skip", "eza,dust"))
	assert.Empty(t, env.exec.CommandLines(), "dry run executes nothing")
	out := env.out.String()
	assert.Contains(t, out, "fd would run: pkgx install fd")
	assert.Contains(t, out, "eza skipped")
	assert.Contains(t, out, "rg already installed")

	env.exec.AddResponse("pkgx install", nil, errors.New("exit status 1"))
	err := env.run(t, "tools", "install")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 tool(s) failed to install")
}

func TestToolsSyncCommand(t *testing.T) {
	env := setupCLI(t)
	env.initProject(t)
	assert.Contains(t, env.read(t, target.MemoryPath()), "0/5")

	env.exec.Install("rg", "fd", "bat", "eza", "dust")
	require.NoError(t, env.run(t, "tools", "sync"))
	assert.Contains(t, env.read(t, target.MemoryPath()), "All modern CLI tools installed (5/5)")
	assert.Contains(t, env.out.String(), "updated")
}

func TestToolsSyncCommand_RequiresInit(t *testing.T) {
	env := setupCLI(t)
	err := env.run(t, "tools", "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude-forge init")
}
