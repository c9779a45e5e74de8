package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMerged_NeitherExists(t *testing.T) {
	_, err := LoadMerged(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestLoadMerged_OnlyOne(t *testing.T) {
	global := filepath.Join(t.TempDir(), "forge.yaml")
	writeFile(t, global, "language: rust\n")

	c, err := LoadMerged(t.TempDir(), global)
	require.NoError(t, err)
	assert.Equal(t, "rust", c.Language)

	proj := t.TempDir()
	writeFile(t, filepath.Join(proj, "forge.yaml"), "language: go\n")
	c, err = LoadMerged(proj, filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "go", c.Language)
}

func TestLoadMerged_ProjectWins(t *testing.T) {
	global := filepath.Join(t.TempDir(), "forge.yaml")
	writeFile(t, global, `language: rust
minimal: true
install_command: brew install
agents: [code-reviewer]
commands: [analyze]
templates:
  - name: shared
    url: https://example.com/global.git
    ref: latest
  - name: global-only
    url: https://example.com/g.git
    ref: v1
`)
	proj := t.TempDir()
	writeFile(t, filepath.Join(proj, "forge.yaml"), `minimal: false
agents: [security-scanner]
templates:
  - name: shared
    url: https://example.com/project.git
    ref: main
  - name: project-only
    url: https://example.com/p.git
    ref: latest
`)

	c, err := LoadMerged(proj, global)
	require.NoError(t, err)
	assert.Equal(t, "rust", c.Language)
	assert.False(t, c.IsMinimal())
	assert.Equal(t, "brew install", c.InstallCommand)
	assert.Equal(t, []string{"security-scanner"}, c.Agents)
	assert.Equal(t, []string{"analyze"}, c.Commands)

	require.Len(t, c.Templates, 3)
	assert.Equal(t, "shared", c.Templates[0].Name)
	assert.Equal(t, "https://example.com/project.git", c.Templates[0].URL)
	assert.Equal(t, "global-only", c.Templates[1].Name)
	assert.Equal(t, "project-only", c.Templates[2].Name)
}

func TestLoadMerged_BadFile(t *testing.T) {
	global := filepath.Join(t.TempDir(), "forge.yaml")
	writeFile(t, global, "language: [")
	_, err := LoadMerged(t.TempDir(), global)
	assert.Error(t, err)
}

func TestMerge_DoesNotMutate(t *testing.T) {
	g := &Config{Language: "rust", Templates: []TemplatePack{{Name: "a"}}}
	p := &Config{Language: "go", Templates: []TemplatePack{{Name: "b"}}}
	_ = Merge(g, p)
	assert.Equal(t, "rust", g.Language)
	assert.Len(t, g.Templates, 1)
}

func TestOverrides(t *testing.T) {
	yes, no := true, false
	g := &Config{Language: "rust", Minimal: &yes, Agents: []string{"a"}, Templates: []TemplatePack{{Name: "shared"}, {Name: "g"}}}
	p := &Config{Language: "go", Minimal: &no, Hooks: []string{}, Templates: []TemplatePack{{Name: "shared"}}}

	assert.Equal(t, []string{"language", "minimal", "templates.shared"}, Overrides(g, p))
	assert.Nil(t, Overrides(nil, p))
}
