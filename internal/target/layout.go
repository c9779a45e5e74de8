package target

import (
	"io/fs"
	"path/filepath"

	"github.com/chaz8081/claude-forge/internal/registry"
)

// Layout of the files the host reads, relative to the project root.
const (
	ConfigDir    = ".claude"
	MemoryFile   = "CLAUDE.md"
	SettingsFile = "config.json"
	MCPFile      = "mcp.json"
	IgnoreFile   = ".claudeignore"
)

// ArtifactDirs are the subdirectories of ConfigDir that hold named artifacts.
var ArtifactDirs = []string{"agents", "commands", "hooks"}

// MemoryPath returns the project memory document path.
func MemoryPath() string { return filepath.Join(ConfigDir, MemoryFile) }

// SettingsPath returns the settings document path.
func SettingsPath() string { return filepath.Join(ConfigDir, SettingsFile) }

// MCPPath returns the MCP server configuration path.
func MCPPath() string { return filepath.Join(ConfigDir, MCPFile) }

// IgnorePath returns the ignore-patterns document path. It lives at the
// project root, not inside ConfigDir.
func IgnorePath() string { return IgnoreFile }

// KindDir returns the directory holding artifacts of kind.
func KindDir(kind registry.Kind) string {
	return filepath.Join(ConfigDir, kind.Dir())
}

// ArtifactPath returns the path of the named artifact of kind.
func ArtifactPath(kind registry.Kind, name string) string {
	return filepath.Join(KindDir(kind), kind.FileName(name))
}

// ArtifactMode returns the file mode for artifacts of kind. Hooks must be
// executable for the host to run them.
func ArtifactMode(kind registry.Kind) fs.FileMode {
	if kind == registry.KindHook {
		return 0o755
	}
	return 0o644
}
