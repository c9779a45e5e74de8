package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/probe"
	"github.com/chaz8081/claude-forge/internal/system"
	"github.com/chaz8081/claude-forge/internal/target"
	"github.com/spf13/cobra"
)

var (
	toolsVersions bool
	toolsSkip     []string
	toolsDryRun   bool
)

// formatToolCheck renders one line per catalog tool. versions maps binary
// names to version strings and may be nil.
func formatToolCheck(res probe.Result, versions map[string]string) string {
	var b strings.Builder
	for _, t := range probe.Tools() {
		if res.Installed(t.Binary) {
			fmt.Fprintf(&b, "  ✓ %-5s %s", t.Binary, t.Description)
			if v, ok := versions[t.Binary]; ok {
				fmt.Fprintf(&b, " (%s)", v)
			}
		} else {
			fmt.Fprintf(&b, "  ✗ %-5s %s, replaces %s. %s", t.Binary, t.Description, t.LegacyCommand, t.InstallHint)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// printOutcomes reports installer results.
func printOutcomes(outcomes []probe.Outcome) {
	for _, o := range outcomes {
		switch o.Status {
		case probe.StatusFailed:
			logging.UserError("%s: %v", o.Tool.Binary, o.Err)
		case probe.StatusInstalled, probe.StatusUpdated:
			logging.UserSuccess("%s %s (%s)", o.Tool.Binary, o.Status, o.Command)
		case probe.StatusWouldInstall:
			logging.UserInfo("%s would run: %s", o.Tool.Binary, o.Command)
		default:
			logging.UserInfo("%s %s", o.Tool.Binary, o.Status)
		}
	}
}

func anyChanged(outcomes []probe.Outcome) bool {
	for _, o := range outcomes {
		if o.Status == probe.StatusInstalled || o.Status == probe.StatusUpdated {
			return true
		}
	}
	return false
}

func failures(outcomes []probe.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == probe.StatusFailed {
			n++
		}
	}
	return n
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Check and install modern CLI tools (rg, fd, bat, eza, dust)",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var toolsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Show which modern CLI tools are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := probe.New(system.DefaultExecutor())
		res := p.ProbeAll()

		var versions map[string]string
		if toolsVersions {
			var installed []string
			for _, t := range probe.Tools() {
				if res.Installed(t.Binary) {
					installed = append(installed, t.Binary)
				}
			}
			versions = p.Versions(cmd.Context(), installed)
		}

		fmt.Fprint(logging.Stdout, formatToolCheck(res, versions))
		fmt.Fprintln(logging.Stdout)
		if missing := res.Missing(probe.Tools()); len(missing) > 0 {
			logging.UserWarning("%d tool(s) missing. Run 'claude-forge tools install' to install them.", len(missing))
		} else {
			logging.UserSuccess("All tools are installed")
		}
		return nil
	},
}

var toolsInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install missing tools with the platform package manager",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		skip := append(append([]string(nil), cfg.SkipTools...), toolsSkip...)
		outcomes := newInstaller(cfg).Install(cmd.Context(), probe.InstallOptions{Skip: skip, DryRun: toolsDryRun})
		printOutcomes(outcomes)
		if n := failures(outcomes); n > 0 {
			return fmt.Errorf("%d tool(s) failed to install", n)
		}
		if anyChanged(outcomes) {
			logging.UserInfo("Run 'claude-forge tools sync' to refresh %s", filepath.ToSlash(target.MemoryPath()))
		}
		return nil
	},
}

var toolsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Upgrade installed tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		skip := append(append([]string(nil), cfg.SkipTools...), toolsSkip...)
		outcomes := newInstaller(cfg).Update(cmd.Context(), probe.InstallOptions{Skip: skip, DryRun: toolsDryRun})
		printOutcomes(outcomes)
		if n := failures(outcomes); n > 0 {
			return fmt.Errorf("%d tool(s) failed to update", n)
		}
		return nil
	},
}

var toolsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the CLI tool section of .claude/CLAUDE.md",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		op, res, err := newGenerator(cfg).Sync(ProjectDir())
		if err != nil {
			return fmt.Errorf("%w (run 'claude-forge init' first)", err)
		}
		printOps([]target.Op{op})
		logging.UserInfo("CLI tools: %s", engine.Status(res))
		return nil
	},
}

func init() {
	toolsCheckCmd.Flags().BoolVar(&toolsVersions, "verbose-versions", false, "show installed versions")
	for _, c := range []*cobra.Command{toolsInstallCmd, toolsUpdateCmd} {
		c.Flags().StringSliceVar(&toolsSkip, "skip", nil, "tools to skip (comma-separated)")
		c.Flags().BoolVar(&toolsDryRun, "dry-run", false, "print commands without running them")
	}
	toolsCmd.AddCommand(toolsCheckCmd, toolsInstallCmd, toolsUpdateCmd, toolsSyncCmd)
	rootCmd.AddCommand(toolsCmd)
}
