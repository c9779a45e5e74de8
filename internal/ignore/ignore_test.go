package ignore

import (
	"io/fs"
	"testing"

	"github.com/chaz8081/claude-forge/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SkipsCommentsAndBlanks(t *testing.T) {
	m := Parse("# comment\n\nnode_modules/\n*.log\n")
	require.Len(t, m.Rules, 2)
	assert.Empty(t, m.Issues)
	assert.Equal(t, 3, m.Rules[0].Line)
	assert.True(t, m.Rules[0].DirOnly)
	assert.Equal(t, "node_modules", m.Rules[0].Pattern)
	assert.Equal(t, "*.log", m.Rules[1].Pattern)
}

func TestParse_InvalidPattern(t *testing.T) {
	m := Parse("ok/\n[unclosed\n!\n")
	require.Len(t, m.Issues, 2)
	assert.Equal(t, 2, m.Issues[0].Line)
	assert.Equal(t, `line 2: invalid pattern "[unclosed"`, m.Issues[0].String())
	assert.Equal(t, 3, m.Issues[1].Line)
	assert.Len(t, m.Rules, 1)
}

func TestMatch(t *testing.T) {
	m := Parse("node_modules/\n*.log\n/dist\ndocs/*.tmp\n.env\n!keep.log\n")

	cases := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"node_modules", true, true},
		{"node_modules/react/index.js", false, true},
		{"web/node_modules/x.js", false, true},
		{"node_modules", false, false},
		{"server.log", false, true},
		{"logs/deep/app.log", false, true},
		{"keep.log", false, false},
		{"dist/app.js", false, true},
		{"src/dist/app.js", false, false},
		{"docs/a.tmp", false, true},
		{"docs/sub/a.tmp", false, false},
		{".env", false, true},
		{"config/.env", false, true},
		{"main.go", false, false},
		{"./server.log", false, true},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			assert.Equal(t, c.want, m.Match(c.path, c.isDir))
		})
	}
}

func TestBuiltinIgnoreIsValid(t *testing.T) {
	b, err := fs.ReadFile(templates.FS(), "ignore/claudeignore")
	require.NoError(t, err)

	m := Parse(string(b))
	assert.Empty(t, m.Issues)
	assert.True(t, m.Match("node_modules/pkg/index.js", false))
	assert.True(t, m.Match("__pycache__/mod.pyc", false))
	assert.False(t, m.Match("src/main.rs", false))
}
