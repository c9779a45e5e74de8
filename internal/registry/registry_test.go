package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"agent":    KindAgent,
		"Agents":   KindAgent,
		"commands": KindCommand,
		"hook":     KindHook,
		"memory":   KindMemory,
		"ignore":   KindIgnore,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("skill")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKind_Layout(t *testing.T) {
	assert.Equal(t, "agents", KindAgent.Dir())
	assert.Equal(t, "hooks", KindHook.Dir())
	assert.Equal(t, "memory", KindMemory.Dir())
	assert.Equal(t, "format.sh", KindHook.FileName("format"))
	assert.Equal(t, "analyze.md", KindCommand.FileName("analyze"))
}

func TestResolve_UnknownKind(t *testing.T) {
	_, err := New().Resolve(Kind("skill"), "x")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestResolve_MemoryDedicated(t *testing.T) {
	r := New()

	rust, err := r.Resolve(KindMemory, "rust")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rust, "# Rust Project Memory"))

	ts, err := r.Resolve(KindMemory, "TypeScript")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ts, "# TypeScript Project Memory"))
}

func TestResolve_MemoryFallbacks(t *testing.T) {
	r := New()

	py, err := r.Resolve(KindMemory, "python")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(py, "# Python Project Memory"))
	assert.Contains(t, py, "PEP 8")

	for _, lang := range []string{"go", "javascript", "java", "elixir", "erlang", "", "cobol"} {
		doc, err := r.Resolve(KindMemory, lang)
		require.NoError(t, err, lang)
		assert.True(t, strings.HasPrefix(doc, "# Project Memory"), lang)
	}
}

func TestResolve_MemoryDocumentsCarryToolsHeading(t *testing.T) {
	r := New()
	for _, lang := range []string{"rust", "typescript", "python", "go"} {
		doc, err := r.Resolve(KindMemory, lang)
		require.NoError(t, err)
		assert.Contains(t, doc, "## 🚫 CLI Tool Usage (When Using Bash)", lang)
	}
}

func TestResolve_BuiltinAgentsAndCommands(t *testing.T) {
	r := New()

	text, err := r.Resolve(KindAgent, "code-reviewer")
	require.NoError(t, err)
	assert.Contains(t, text, "# Code Reviewer Agent")

	text, err = r.Resolve(KindAgent, "security-scanner")
	require.NoError(t, err)
	assert.Contains(t, text, "# Security Scanner Agent")

	text, err = r.Resolve(KindCommand, "analyze")
	require.NoError(t, err)
	assert.Contains(t, text, "Analyze the codebase")

	text, err = r.Resolve(KindCommand, "refactor")
	require.NoError(t, err)
	assert.Contains(t, text, "refactoring opportunities")
}

func TestResolve_UnknownNameUsesScaffold(t *testing.T) {
	r := New()

	text, err := r.Resolve(KindAgent, "perf-auditor")
	require.NoError(t, err)
	assert.Contains(t, text, "name: perf-auditor")
	assert.Contains(t, text, "# perf-auditor")
	assert.NotContains(t, text, "{{")

	text, err = r.Resolve(KindCommand, "release-notes")
	require.NoError(t, err)
	assert.Contains(t, text, "/release-notes")

	text, err = r.Resolve(KindHook, "gofmt")
	require.NoError(t, err)
	assert.Contains(t, text, "# gofmt hook")
}

func TestResolve_PathLikeNamesUseScaffold(t *testing.T) {
	root := writePack(t, map[string]string{"memory/rust.md": "# Pack Rust"})
	r := New(&DirSource{SourceName: "local", Root: root})

	for _, name := range []string{"../memory/rust", `..\memory\rust`, "agents/code-reviewer", ".."} {
		text, err := r.Resolve(KindAgent, name)
		require.NoError(t, err, name)
		assert.Contains(t, text, "description: Custom agent", name)
		assert.NotContains(t, text, "Rust", name)
	}
}

func TestValidName(t *testing.T) {
	for _, bad := range []string{"", ".", "..", "../x", `a\b`, "a/b"} {
		assert.False(t, ValidName(bad), bad)
	}
	assert.True(t, ValidName("code-reviewer"))
	assert.True(t, ValidName("v1..2"))
}

func TestResolve_HookAliases(t *testing.T) {
	r := New()

	format, err := r.Resolve(KindHook, "format")
	require.NoError(t, err)
	prettier, err := r.Resolve(KindHook, "prettier-format")
	require.NoError(t, err)
	assert.Equal(t, format, prettier)
	assert.Contains(t, format, "prettier --write")

	lint, err := r.Resolve(KindHook, "eslint-check")
	require.NoError(t, err)
	assert.Contains(t, lint, "eslint \"$file_path\"")
}

func TestResolve_HooksHonorContract(t *testing.T) {
	r := New()
	for _, name := range []string{"format", "lint", "custom-thing"} {
		text, err := r.Resolve(KindHook, name)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(text, "#!/bin/bash\n"), name)
		assert.Contains(t, text, "input=$(cat)", name)
		assert.Contains(t, text, ".tool_input.file_path // .tool_input.file", name)
		assert.True(t, strings.HasSuffix(text, "exit 0\n"), name)
	}
}

func TestResolve_Ignore(t *testing.T) {
	text, err := New().Resolve(KindIgnore, "")
	require.NoError(t, err)
	for _, p := range []string{"node_modules/", "target/", ".env", "__pycache__/", "*.class"} {
		assert.Contains(t, text, p+"\n")
	}
}

func writePack(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestResolve_SourcesTakePriority(t *testing.T) {
	root := writePack(t, map[string]string{
		"agents/code-reviewer.md": "team reviewer",
		"memory/go.md":            "# Go Project Memory\n",
		"ignore/claudeignore":     "bazel-*/\n",
	})
	r := New(&DirSource{SourceName: "team", Root: root})

	text, err := r.Resolve(KindAgent, "code-reviewer")
	require.NoError(t, err)
	assert.Equal(t, "team reviewer", text)

	text, err = r.Resolve(KindMemory, "go")
	require.NoError(t, err)
	assert.Equal(t, "# Go Project Memory\n", text)

	text, err = r.Resolve(KindIgnore, "")
	require.NoError(t, err)
	assert.Equal(t, "bazel-*/\n", text)

	text, err = r.Resolve(KindAgent, "security-scanner")
	require.NoError(t, err)
	assert.Contains(t, text, "# Security Scanner Agent")
}

type brokenSource struct{}

func (brokenSource) Name() string { return "broken" }

func (brokenSource) Lookup(Kind, string) (string, bool, error) {
	return "", false, errors.New("network down")
}

func (brokenSource) List(Kind) ([]string, error) { return nil, errors.New("network down") }

func TestResolve_BrokenSourceDegrades(t *testing.T) {
	r := New(brokenSource{})

	text, err := r.Resolve(KindCommand, "analyze")
	require.NoError(t, err)
	assert.Contains(t, text, "Analyze the codebase")

	entries, err := r.List(KindCommand)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestList_MergesAndShadows(t *testing.T) {
	root := writePack(t, map[string]string{
		"agents/code-reviewer.md": "team reviewer",
		"agents/go-expert.md":     "go",
	})
	r := New(&DirSource{SourceName: "team", Root: root})

	entries, err := r.List(KindAgent)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Kind: KindAgent, Name: "code-reviewer", Source: "team"},
		{Kind: KindAgent, Name: "go-expert", Source: "team"},
		{Kind: KindAgent, Name: "security-scanner", Source: "builtin"},
	}, entries)
}

func TestEmbedded_List(t *testing.T) {
	e := NewEmbedded()

	hooks, err := e.List(KindHook)
	require.NoError(t, err)
	assert.Equal(t, []string{"format", "lint"}, hooks)

	mem, err := e.List(KindMemory)
	require.NoError(t, err)
	assert.Equal(t, []string{"generic", "python", "rust", "typescript"}, mem)

	ign, err := e.List(KindIgnore)
	require.NoError(t, err)
	assert.Equal(t, []string{"claudeignore"}, ign)
}

func TestDirSource_RejectsEscapingNames(t *testing.T) {
	root := writePack(t, map[string]string{"agents/a.md": "a"})
	d := &DirSource{SourceName: "local", Root: root}

	_, ok, err := d.Lookup(KindAgent, "../agents/a")
	require.NoError(t, err)
	assert.False(t, ok)
}
