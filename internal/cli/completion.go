package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/target"
	"github.com/spf13/cobra"
)

// completionShell generates one shell's completion script and knows where
// that shell looks for user-installed scripts.
type completionShell struct {
	name     string
	generate func(root *cobra.Command, w io.Writer) error
	// location returns the install directory and file name for bin.
	location func(home, configHome, bin string) (dir, file string)
}

var completionShells = []completionShell{
	{
		name:     "bash",
		generate: func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
		location: func(home, _, bin string) (string, string) {
			return filepath.Join(home, ".local", "share", "bash-completion", "completions"), bin
		},
	},
	{
		name:     "zsh",
		generate: func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
		location: func(home, _, bin string) (string, string) {
			return filepath.Join(home, ".local", "share", "zsh", "site-functions"), "_" + bin
		},
	},
	{
		name:     "fish",
		generate: func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
		location: func(_, configHome, bin string) (string, string) {
			return filepath.Join(configHome, "fish", "completions"), bin + ".fish"
		},
	},
	{
		name:     "powershell",
		generate: func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
		location: func(_, configHome, bin string) (string, string) {
			return filepath.Join(configHome, "powershell"), bin + ".ps1"
		},
	},
}

func completionShellNames() []string {
	names := make([]string, 0, len(completionShells))
	for _, sh := range completionShells {
		names = append(names, sh.name)
	}
	return names
}

// findCompletionShell accepts a shell name or a path to its binary.
func findCompletionShell(name string) (completionShell, error) {
	name = strings.TrimSuffix(filepath.Base(name), ".exe")
	if name == "pwsh" {
		name = "powershell"
	}
	for _, sh := range completionShells {
		if sh.name == name {
			return sh, nil
		}
	}
	return completionShell{}, fmt.Errorf("unsupported shell %q (supported: %s)", name, strings.Join(completionShellNames(), ", "))
}

// resolveCompletionShell uses the argument when given, else $SHELL.
func resolveCompletionShell(args []string) (completionShell, error) {
	if len(args) > 0 {
		return findCompletionShell(args[0])
	}
	env := os.Getenv("SHELL")
	if env == "" {
		return completionShell{}, fmt.Errorf("$SHELL is not set, pass the shell name (%s)", strings.Join(completionShellNames(), ", "))
	}
	return findCompletionShell(env)
}

// completionTarget returns a writer rooted at the shell's completion
// directory and the script's file name inside it.
func completionTarget(sh completionShell, root *cobra.Command) (*target.Writer, string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("locate home directory: %w", err)
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dir, file := sh.location(home, configHome, root.Name())
	return target.NewWriter(dir), file, nil
}

// installCompletion writes the script for root and returns its path and
// whether it was created, updated or already current.
func installCompletion(sh completionShell, root *cobra.Command) (string, target.OpStatus, error) {
	w, file, err := completionTarget(sh, root)
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := sh.generate(root, &buf); err != nil {
		return "", "", fmt.Errorf("generate %s completion: %w", sh.name, err)
	}
	doc := target.Document{Path: file, Content: buf.String(), Mode: 0o644, Policy: target.Replace}
	op, err := w.Write(doc, target.InstallOpts{})
	if err != nil {
		return "", "", err
	}
	return filepath.Join(w.Root, file), op.Status, nil
}

// uninstallCompletion removes the installed script. A missing script is
// reported through removed, not as an error.
func uninstallCompletion(sh completionShell, root *cobra.Command) (path string, removed bool, err error) {
	w, file, err := completionTarget(sh, root)
	if err != nil {
		return "", false, err
	}
	path = filepath.Join(w.Root, file)
	if !w.Exists(file) {
		return path, false, nil
	}
	if err := w.RemoveAll(file); err != nil {
		return path, false, err
	}
	return path, true, nil
}

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Print or install shell completions",
	Long: `Print a completion script with one of the shell subcommands, or let
"install" write it where the shell picks it up. The shell defaults to $SHELL.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var completionInstallCmd = &cobra.Command{
	Use:       "install [shell]",
	Short:     "Install the completion script for your shell",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: completionShellNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := resolveCompletionShell(args)
		if err != nil {
			return err
		}
		path, status, err := installCompletion(sh, cmd.Root())
		if err != nil {
			return err
		}
		if status == target.OpUnchanged {
			logging.UserInfo("%s completions already up to date at %s", sh.name, path)
			return nil
		}
		logging.UserSuccess("%s completions %s at %s", sh.name, status, path)
		logging.UserInfo("Restart your shell to activate completions.")
		return nil
	},
}

var completionUninstallCmd = &cobra.Command{
	Use:       "uninstall [shell]",
	Short:     "Remove the installed completion script",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: completionShellNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		sh, err := resolveCompletionShell(args)
		if err != nil {
			return err
		}
		path, removed, err := uninstallCompletion(sh, cmd.Root())
		if err != nil {
			return err
		}
		if !removed {
			logging.UserInfo("No %s completions installed at %s", sh.name, path)
			return nil
		}
		logging.UserSuccess("Removed %s completions from %s", sh.name, path)
		return nil
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	for _, sh := range completionShells {
		sh := sh
		completionCmd.AddCommand(&cobra.Command{
			Use:   sh.name,
			Short: fmt.Sprintf("Print the %s completion script", sh.name),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return sh.generate(cmd.Root(), logging.Stdout)
			},
		})
	}
	completionCmd.AddCommand(completionInstallCmd, completionUninstallCmd)
	rootCmd.AddCommand(completionCmd)
}
