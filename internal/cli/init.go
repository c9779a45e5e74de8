package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/mcp"
	"github.com/chaz8081/claude-forge/internal/probe"
	"github.com/chaz8081/claude-forge/internal/target"
	"github.com/spf13/cobra"
)

var (
	initLang    string
	initYes     bool
	initMinimal bool
	initNoTools bool
	initNoMCP   bool
	initForce   bool
)

// resolveInitLanguage picks the project language. An explicit name (flag or
// configuration) wins. Otherwise the detected language is confirmed
// interactively unless yes is set. When nothing is detected, yes falls back
// to TypeScript and interactive runs ask.
func resolveInitLanguage(dir, explicit string, yes bool) (engine.Language, error) {
	if explicit != "" {
		return engine.ParseLanguage(explicit)
	}

	lang, err := engine.Detect(dir)
	switch {
	case err == nil:
		logging.UserSuccess("Detected language: %s", lang.DisplayName())
		if yes {
			return lang, nil
		}
		ok, err := confirmPrompt(fmt.Sprintf("Use %s for this project?", lang.DisplayName()), true)
		if err != nil {
			return 0, err
		}
		if ok {
			return lang, nil
		}
		return selectLanguagePrompt()
	case errors.Is(err, engine.ErrNotDetected):
		if yes {
			logging.UserWarning("Could not detect language, using %s as default", engine.TypeScript.DisplayName())
			return engine.TypeScript, nil
		}
		return selectLanguagePrompt()
	default:
		return 0, err
	}
}

// printOps reports what happened to each generated document.
func printOps(ops []target.Op) {
	for _, op := range ops {
		switch op.Status {
		case target.OpSkipped:
			logging.UserWarning("%s exists, skipped (use --force to overwrite)", op.Path)
		case target.OpUnchanged:
			logging.UserInfo("%s unchanged", op.Path)
		default:
			logging.UserSuccess("%s %s", op.Path, op.Status)
		}
	}
}

// addEssentialServers records the essential MCP servers in the project's
// mcp.json, leaving existing entries alone.
func addEssentialServers(dir string) ([]string, error) {
	path := filepath.Join(dir, target.MCPPath())
	f, err := mcp.Load(path)
	if err != nil {
		return nil, err
	}
	var added []string
	for _, s := range mcp.Essential() {
		if f.Has(s.Name) {
			continue
		}
		f.Add(s.Name, s.Config(nil, nil))
		added = append(added, s.Name)
	}
	if len(added) == 0 {
		return nil, nil
	}
	return added, f.Save(path)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a .claude/ configuration for this project",
	Long: `Detects the project language (or uses --lang), then writes .claude/CLAUDE.md,
.claude/config.json, .claudeignore and the default agents, commands and hooks.
Existing files are kept unless --force is given; an existing CLAUDE.md only
has its CLI tool section refreshed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ProjectDir()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		explicit := initLang
		if explicit == "" {
			explicit = cfg.Language
		}
		lang, err := resolveInitLanguage(dir, explicit, initYes)
		if err != nil {
			return err
		}

		opts := cfg.GenerateOptions()
		if initMinimal {
			opts.Minimal = true
		}
		gen := newGenerator(cfg)
		res, err := gen.Generate(dir, lang, opts, target.InstallOpts{Force: initForce})
		if res != nil {
			printOps(res.Ops)
		}
		if err != nil {
			return err
		}
		logging.UserInfo("CLI tools: %s", engine.Status(res.Plan.Probe))

		if !initNoTools && res.Plan.Probe.Count(probe.Tools()) < len(probe.Tools()) {
			install := initYes
			if !install {
				if install, err = confirmPrompt("Install modern CLI tools (rg, fd, bat, eza, dust)?", true); err != nil {
					return err
				}
			}
			if install {
				outcomes := newInstaller(cfg).Install(cmd.Context(), probe.InstallOptions{Skip: cfg.SkipTools})
				printOutcomes(outcomes)
				if anyChanged(outcomes) {
					if _, pr, err := gen.Sync(dir); err == nil {
						logging.UserInfo("CLI tools: %s", engine.Status(pr))
					} else {
						logging.UserWarning("refresh %s: %v", target.MemoryPath(), err)
					}
				}
			}
		}

		if !initNoMCP {
			configure := initYes
			if !configure {
				if configure, err = confirmPrompt("Configure recommended MCP servers?", true); err != nil {
					return err
				}
			}
			if configure {
				added, err := addEssentialServers(dir)
				if err != nil {
					return err
				}
				for _, name := range added {
					logging.UserSuccess("MCP server %s added to %s", name, target.MCPPath())
				}
			}
		}

		printNextSteps(lang)
		return nil
	},
}

func printNextSteps(lang engine.Language) {
	out := logging.Stdout
	fmt.Fprintf(out, "\nClaude Code configuration initialized for your %s project.\n\n", lang.DisplayName())
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Review the generated files in %s\n", target.ConfigDir)
	fmt.Fprintf(out, "  2. Customize %s to fit your project\n", filepath.ToSlash(target.MemoryPath()))
	fmt.Fprintln(out, "  3. Add agents, commands or hooks with 'claude-forge add'")
	fmt.Fprintln(out, "  4. Run 'claude-forge config validate' to check the result")
}

func init() {
	initCmd.Flags().StringVarP(&initLang, "lang", "l", "", "project language (skips detection)")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "accept defaults without prompting")
	initCmd.Flags().BoolVar(&initMinimal, "minimal", false, "only write CLAUDE.md and .claudeignore")
	initCmd.Flags().BoolVar(&initNoTools, "no-tools", false, "skip installing modern CLI tools")
	initCmd.Flags().BoolVar(&initNoMCP, "no-mcp", false, "skip MCP server configuration")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
	_ = initCmd.RegisterFlagCompletionFunc("lang", completeLanguages)
	rootCmd.AddCommand(initCmd)
}

// completeLanguages offers the supported language names.
func completeLanguages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, l := range engine.Languages() {
		names = append(names, l.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
