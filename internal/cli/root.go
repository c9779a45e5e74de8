package cli

import (
	"context"
	"os"

	"github.com/chaz8081/claude-forge/internal/cli/ui"
	"github.com/chaz8081/claude-forge/internal/config"
	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/probe"
	"github.com/chaz8081/claude-forge/internal/registry"
	"github.com/chaz8081/claude-forge/internal/system"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	rootCmd = &cobra.Command{
		Use:   "claude-forge",
		Short: "claude-forge - bootstrap Claude Code configuration",
		Long: `claude-forge detects your project's language and generates a ready-to-use
.claude/ directory: a project memory document tailored to the CLI tools
installed on this machine, settings, agents, slash commands and hooks.

  Examples:
  claude-forge init           # detect the language and generate .claude/
  claude-forge tools check    # see which modern CLI tools are installed
  claude-forge add agent docs-writer
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbose, logJSON, nil)
		},
		// Default action launches the template browser for interactive
		// terminals and falls back to help otherwise.
		RunE: func(cmd *cobra.Command, args []string) error {
			if isInteractiveTTY() {
				svc, err := newBrowserService(ProjectDir())
				if err != nil {
					return err
				}
				return launchUI(svc)
			}
			return cmd.Help()
		},
	}

	projectDir       string
	verbose          bool
	logJSON          bool
	launchUI         = ui.Run
	isInteractiveTTY = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	globalConfigPath = config.GlobalPath
	cacheDir         = config.CacheDir
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit debug logs as JSON")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project-dir", "p", ".", "override project root directory")
}

// Execute runs the root cobra command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// ProjectDir returns the configured project directory.
func ProjectDir() string { return projectDir }

// loadConfig returns the effective configuration for the project.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(ProjectDir(), globalConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRegistry returns a registry that consults the configured template
// packs before the built-in templates.
func newRegistry(cfg *config.Config) *registry.Registry {
	return registry.New(cfg.Sources(cacheDir())...)
}

func newGenerator(cfg *config.Config) *engine.Generator {
	return engine.NewGenerator(newRegistry(cfg), probe.New(system.DefaultExecutor()))
}

func newInstaller(cfg *config.Config) *probe.Installer {
	inst := probe.NewInstaller(system.DefaultExecutor())
	inst.Command = cfg.InstallCommand
	return inst
}
