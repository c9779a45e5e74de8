package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTemplateRepo creates a local git repository with one agent template.
func newTemplateRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	commitTemplate(t, repo, dir, "agents/docs-writer.md", "# Docs writer\n")
	return dir, repo
}

func commitTemplate(t *testing.T, repo *git.Repository, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&git.AddOptions{All: true}))
	_, err = wt.Commit("update "+rel, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@test.com", When: time.Now()},
	})
	require.NoError(t, err)
}

func TestPackUpdateString(t *testing.T) {
	assert.Equal(t, "team: cloned at abc1234", packUpdate{Name: "team", After: "abc1234"}.String())
	assert.Equal(t, "team: up to date (abc1234)", packUpdate{Name: "team", Before: "abc1234", After: "abc1234"}.String())
	assert.Equal(t, "team: abc1234 -> def5678", packUpdate{Name: "team", Before: "abc1234", After: "def5678"}.String())
	assert.Equal(t, "team: boom", packUpdate{Name: "team", Err: errors.New("boom")}.String())
}

func TestUpdateCommand_NoPacks(t *testing.T) {
	env := setupCLI(t)
	require.NoError(t, env.run(t, "update"))
	assert.Contains(t, env.out.String(), "No template packs configured")
}

func TestUpdateCommand_ClonesAndRefreshes(t *testing.T) {
	env := setupCLI(t)
	url, repo := newTemplateRepo(t)
	env.write(t, "forge.yaml", "templates:\n  - name: team\n    url: "+url+"\n    ref: latest\n")

	require.NoError(t, env.run(t, "update", "--dry-run"))
	assert.Contains(t, env.out.String(), "not cached, would clone")

	env.out.Reset()
	require.NoError(t, env.run(t, "update"))
	assert.Contains(t, env.out.String(), "team: cloned at")

	env.out.Reset()
	require.NoError(t, env.run(t, "update"))
	assert.Contains(t, env.out.String(), "team: up to date")

	commitTemplate(t, repo, url, "agents/planner.md", "# Planner\n")
	env.out.Reset()
	require.NoError(t, env.run(t, "update"))
	assert.Contains(t, env.out.String(), " -> ")

	env.out.Reset()
	require.NoError(t, env.run(t, "templates", "list", "agent"))
	assert.Contains(t, env.out.String(), "planner")
	assert.Contains(t, env.out.String(), "[team]")
}

func TestUpdateCommand_ReportsFailures(t *testing.T) {
	env := setupCLI(t)
	missing := filepath.Join(t.TempDir(), "gone")
	env.write(t, "forge.yaml", "templates:\n  - name: broken\n    url: "+missing+"\n    ref: latest\n")

	err := env.run(t, "update")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 template pack(s) failed")
}
