package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArtifact_Agent(t *testing.T) {
	content := `---
name: code-reviewer
description: Reviews code for quality
tools:
  - Read
  - Grep
---

# Code Reviewer Agent

You are a code review specialist.
`

	a, err := ParseArtifact([]byte(content))
	require.NoError(t, err)
	assert.True(t, a.HasMeta)
	assert.Equal(t, "code-reviewer", a.Name)
	assert.Equal(t, "Reviews code for quality", a.Description)
	assert.Equal(t, []string{"Read", "Grep"}, a.Tools)
	assert.Equal(t, "# Code Reviewer Agent\n\nYou are a code review specialist.", a.Body)
}

func TestParseArtifact_Command(t *testing.T) {
	content := "---\ndescription: Analyze codebase\nallowed-tools: Read,Grep,Glob\n---\n\nAnalyze the codebase.\n"

	a, err := ParseArtifact([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, "Analyze codebase", a.Description)
	assert.Equal(t, "Read,Grep,Glob", a.AllowedTools)
	assert.Equal(t, "Analyze the codebase.", a.Body)
}

func TestParseArtifact_CRLF(t *testing.T) {
	a, err := ParseArtifact([]byte("---\r\nname: x\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "x", a.Name)
	assert.Equal(t, "body", a.Body)
}

func TestParseArtifact_NoFrontmatter(t *testing.T) {
	a, err := ParseArtifact([]byte("# Hello\n\nNo frontmatter here."))
	require.NoError(t, err)
	assert.False(t, a.HasMeta)
	assert.Empty(t, a.Name)
	assert.Equal(t, "# Hello\n\nNo frontmatter here.", a.Body)
}

func TestParseArtifact_EmptyFrontmatter(t *testing.T) {
	a, err := ParseArtifact([]byte("---\n---\nbody"))
	require.NoError(t, err)
	assert.True(t, a.HasMeta)
	assert.Equal(t, "body", a.Body)
}

func TestParseArtifact_Errors(t *testing.T) {
	_, err := ParseArtifact([]byte("  \n"))
	assert.Error(t, err)

	_, err = ParseArtifact([]byte("---\nname: x\nbody without close\n"))
	assert.ErrorIs(t, err, ErrUnterminated)

	_, err = ParseArtifact([]byte("---\nname: [unclosed\n---\nbody\n"))
	assert.Error(t, err)
}

func TestRenderArtifact_RoundTrip(t *testing.T) {
	in := &Artifact{
		Name:        "security-scanner",
		Description: "Scans for vulnerabilities",
		Tools:       []string{"Read", "Grep"},
		Body:        "# Security Scanner\n\nFind problems.",
	}
	out, err := RenderArtifact(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), "---\nname: security-scanner\n")

	back, err := ParseArtifact(out)
	require.NoError(t, err)
	assert.Equal(t, in.Name, back.Name)
	assert.Equal(t, in.Tools, back.Tools)
	assert.Equal(t, in.Body, back.Body)
}

func TestRenderArtifact_BodyOnly(t *testing.T) {
	out, err := RenderArtifact(&Artifact{Body: "just text"})
	require.NoError(t, err)
	assert.Equal(t, "just text\n", string(out))
}
