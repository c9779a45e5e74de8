package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chaz8081/claude-forge/internal/config"
	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/target"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"
)

const exportHeader = "# claude-forge configuration\n# Generated by 'claude-forge config export'\n\n"

// formatPaths returns a human-readable summary of config file locations and their status.
func formatPaths(globalPath, projectDir, cacheDir string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Global config:  %s  %s\n", globalPath, foundTag(globalPath))

	projectPath, ok := config.ProjectPath(projectDir)
	projectStatus := "[not found]"
	if ok {
		projectStatus = "[found]"
	}
	fmt.Fprintf(&b, "Project config: %s  %s\n", projectPath, projectStatus)

	envPath := filepath.Join(projectDir, ".env")
	fmt.Fprintf(&b, "Env file:       %s  %s\n", envPath, foundTag(envPath))

	absProject, err := filepath.Abs(projectDir)
	if err != nil {
		absProject = projectDir
	}
	fmt.Fprintf(&b, "Project dir:    %s\n", absProject)
	fmt.Fprintf(&b, "Claude dir:     %s  %s\n", filepath.Join(absProject, target.ConfigDir), foundTag(filepath.Join(absProject, target.ConfigDir)))
	fmt.Fprintf(&b, "Cache dir:      %s\n", cacheDir)

	return b.String()
}

func foundTag(path string) string {
	if _, err := os.Stat(path); err == nil {
		return "[found]"
	}
	return "[not found]"
}

// renderConfigYAML marshals a config to YAML for display.
func renderConfigYAML(c *config.Config) string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("# error marshaling config: %v\n", err)
	}
	return string(data)
}

// annotateConfig renders the merged config followed by the origin of each
// template pack and the list of project overrides. Either global or project
// may be nil.
func annotateConfig(global, project, merged *config.Config) string {
	var b strings.Builder
	b.WriteString(renderConfigYAML(merged))

	inGlobal := packNames(global)
	inProject := packNames(project)
	if len(merged.Templates) > 0 {
		b.WriteString("\n# template sources:\n")
		for _, t := range merged.Templates {
			fmt.Fprintf(&b, "#   %s  %s\n", t.Name, sourceTag(inGlobal[t.Name], inProject[t.Name]))
		}
	}
	if overrides := config.Overrides(global, project); len(overrides) > 0 {
		b.WriteString("\n# project overrides global:\n")
		for _, o := range overrides {
			fmt.Fprintf(&b, "#   %s\n", o)
		}
	}
	return b.String()
}

func packNames(c *config.Config) map[string]bool {
	out := make(map[string]bool)
	if c == nil {
		return out
	}
	for _, t := range c.Templates {
		out[t.Name] = true
	}
	return out
}

// sourceTag returns the appropriate annotation based on origin.
func sourceTag(inGlobal, inProject bool) string {
	switch {
	case inGlobal && inProject:
		return "[project, overrides global]"
	case inGlobal:
		return "[global]"
	case inProject:
		return "[project]"
	default:
		return ""
	}
}

// loadLayers reads the global and project files separately. Missing files
// yield nil.
func loadLayers(projectDir, globalPath string) (global, project *config.Config, err error) {
	if _, statErr := os.Stat(globalPath); statErr == nil {
		if global, err = config.LoadFile(globalPath); err != nil {
			return nil, nil, fmt.Errorf("global config %s: %w", globalPath, err)
		}
	}
	if p, ok := config.ProjectPath(projectDir); ok {
		if project, err = config.LoadFile(p); err != nil {
			return nil, nil, fmt.Errorf("project config %s: %w", p, err)
		}
	}
	return global, project, nil
}

// validateProject combines the .claude/ checks with the preferences checks.
func validateProject(dir string) *engine.Report {
	report := engine.Validate(dir)
	cfg, err := config.Load(dir, globalConfigPath())
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		report.Errors = append(report.Errors, "forge config: "+err.Error())
	}
	return report
}

func printReport(r *engine.Report) {
	for _, e := range r.Errors {
		logging.UserError("%s", e)
	}
	for _, w := range r.Warnings {
		logging.UserWarning("%s", w)
	}
}

// resetClaudeDir removes .claude/ from dir. It reports whether anything
// was removed.
func resetClaudeDir(dir string) (bool, error) {
	w := target.NewWriter(dir)
	if !w.Exists(target.ConfigDir) {
		return false, nil
	}
	if err := w.RemoveAll(target.ConfigDir); err != nil {
		return false, err
	}
	return true, nil
}

var (
	configShowSources bool
	configResetForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate, inspect or reset the configuration",
	Long: `Work with the generated .claude/ directory and the forge.yaml preferences.

Subcommands:
  validate   Check .claude/ and forge.yaml for problems
  show       Print the effective merged preferences as YAML
  paths      Show resolved file locations
  reset      Remove .claude/
  export     Write the effective preferences to a file`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the generated configuration for problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		report := validateProject(ProjectDir())
		printReport(report)
		if !report.OK() {
			return fmt.Errorf("configuration has %d error(s)", len(report.Errors))
		}
		if len(report.Warnings) > 0 {
			logging.UserSuccess("Configuration is valid (%d warning(s))", len(report.Warnings))
		} else {
			logging.UserSuccess("Configuration is valid")
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective merged preferences",
	Long: `Loads the global and project forge.yaml files, merges them, applies
environment overrides and prints the result as YAML.

Use --sources to list where template packs come from and which settings
the project file overrides.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(ProjectDir(), globalConfigPath())
		if err != nil {
			return err
		}
		if !configShowSources {
			fmt.Fprint(logging.Stdout, renderConfigYAML(cfg))
			return nil
		}
		global, project, err := loadLayers(ProjectDir(), globalConfigPath())
		if err != nil {
			return err
		}
		fmt.Fprint(logging.Stdout, annotateConfig(global, project, cfg))
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show resolved file locations",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(logging.Stdout, formatPaths(globalConfigPath(), ProjectDir(), cacheDir()))
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the generated .claude/ directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !configResetForce {
			ok, err := confirmPrompt(fmt.Sprintf("Remove %s? This cannot be undone.", filepath.Join(ProjectDir(), target.ConfigDir)), false)
			if err != nil {
				return err
			}
			if !ok {
				logging.UserInfo("Reset cancelled")
				return nil
			}
		}
		removed, err := resetClaudeDir(ProjectDir())
		if err != nil {
			return err
		}
		if !removed {
			logging.UserInfo("Nothing to reset: %s not found", target.ConfigDir)
			return nil
		}
		logging.UserSuccess("Removed %s", target.ConfigDir)
		return nil
	},
}

var configExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the effective preferences to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(ProjectDir(), globalConfigPath())
		if err != nil {
			return err
		}
		if err := config.Save(cfg, args[0], exportHeader); err != nil {
			return err
		}
		logging.UserSuccess("Exported configuration to %s", args[0])
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowSources, "sources", false, "annotate template packs and overrides with their origin")
	configResetCmd.Flags().BoolVarP(&configResetForce, "force", "f", false, "skip the confirmation prompt")

	configCmd.AddCommand(configValidateCmd, configShowCmd, configPathsCmd, configResetCmd, configExportCmd)
	rootCmd.AddCommand(configCmd)
}
