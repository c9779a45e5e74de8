package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaz8081/claude-forge/internal/config"
	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/system"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

var errUnexpectedPrompt = errors.New("unexpected prompt")

// cliEnv is an isolated project, config home and executor for driving
// commands end to end.
type cliEnv struct {
	dir  string
	out  *bytes.Buffer
	exec *system.MockExecutor
}

func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	env := &cliEnv{dir: t.TempDir(), out: &bytes.Buffer{}, exec: system.NewMockExecutor()}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{config.EnvLanguage, config.EnvMinimal, config.EnvSkipTools} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	origStdout, origStderr := logging.Stdout, logging.Stderr
	origConfirm, origSelect := confirmPrompt, selectLanguagePrompt
	origTTY, origCache := isInteractiveTTY, cacheDir
	t.Cleanup(func() {
		logging.Stdout, logging.Stderr = origStdout, origStderr
		confirmPrompt, selectLanguagePrompt = origConfirm, origSelect
		isInteractiveTTY, cacheDir = origTTY, origCache
		system.ResetDefaults()
		rootCmd.SetOut(nil)
		projectDir = "."
	})

	logging.Stdout, logging.Stderr = env.out, env.out
	rootCmd.SetOut(env.out)
	confirmPrompt = func(string, bool) (bool, error) { return false, errUnexpectedPrompt }
	selectLanguagePrompt = func() (engine.Language, error) { return 0, errUnexpectedPrompt }
	isInteractiveTTY = func() bool { return false }
	cache := filepath.Join(t.TempDir(), "cache")
	cacheDir = func() string { return cache }
	system.SetDefaultExecutor(env.exec)
	projectDir = env.dir
	return env
}

// run executes the root command against the env's project.
func (e *cliEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(append([]string{"--project-dir", e.dir}, args...))
	return rootCmd.ExecuteContext(context.Background())
}

func (e *cliEnv) write(t *testing.T, rel, content string) {
	t.Helper()
	p := filepath.Join(e.dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func (e *cliEnv) read(t *testing.T, rel string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(e.dir, rel))
	require.NoError(t, err)
	return string(b)
}

// initProject runs a non-interactive init for a Go project.
func (e *cliEnv) initProject(t *testing.T) {
	t.Helper()
	e.write(t, "go.mod", "module example.com/demo\n")
	require.NoError(t, e.run(t, "init", "-y", "--no-tools", "--no-mcp"))
	e.out.Reset()
}

// resetFlags restores every flag to its default since cobra keeps parsed
// values on the package-level commands between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
