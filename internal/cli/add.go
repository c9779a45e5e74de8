package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/registry"
	"github.com/chaz8081/claude-forge/internal/system"
	"github.com/chaz8081/claude-forge/internal/target"
	"github.com/chaz8081/claude-forge/pkg/schema"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

const defaultEditor = "vim"

var (
	addTemplate string
	addEdit     bool
	addEvent    string
	addForce    bool
)

// addRequest describes one artifact to add to an initialized project.
type addRequest struct {
	Kind     registry.Kind
	Name     string
	Template string // optional file whose content is used verbatim
	Event    string // hooks only: settings event to bind
	Force    bool
}

func validateArtifactName(name string) error {
	if !registry.ValidName(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

// addArtifact writes the artifact and returns its project-relative path.
func addArtifact(dir string, gen *engine.Generator, req addRequest) (string, error) {
	if err := validateArtifactName(req.Name); err != nil {
		return "", err
	}
	w := target.NewWriter(dir)
	if !w.Exists(target.ConfigDir) {
		return "", fmt.Errorf("no %s directory found. Run 'claude-forge init' first", target.ConfigDir)
	}

	doc, err := gen.Artifact(req.Kind, req.Name)
	if err != nil {
		return "", err
	}
	if req.Template != "" {
		b, err := os.ReadFile(req.Template)
		if err != nil {
			return "", fmt.Errorf("read template: %w", err)
		}
		if doc.Content, err = templateContent(req.Kind, doc.Content, b); err != nil {
			return "", err
		}
	}
	doc.Policy = target.FailExisting

	// A malformed config.json must fail before the hook is written.
	var settings *engine.Settings
	if req.Kind == registry.KindHook && req.Event != "" {
		if settings, err = loadSettings(w, dir); err != nil {
			return "", fmt.Errorf("%s: %w", target.SettingsPath(), err)
		}
	}

	if _, err := w.Write(doc, target.InstallOpts{Force: req.Force}); err != nil {
		if errors.Is(err, target.ErrExists) {
			return "", fmt.Errorf("%s %q already exists (use --force to overwrite)", req.Kind, req.Name)
		}
		return "", err
	}

	if settings != nil {
		settings.BindHook(req.Event, filepath.ToSlash(doc.Path))
		text, err := settings.Render()
		if err != nil {
			return doc.Path, err
		}
		settingsDoc := target.Document{Path: target.SettingsPath(), Content: text, Mode: 0o644, Policy: target.Replace}
		if _, err := w.Write(settingsDoc, target.InstallOpts{}); err != nil {
			return doc.Path, err
		}
	}
	return doc.Path, nil
}

// templateContent returns the user-supplied template. Agent and command
// templates without frontmatter take it from the generated document.
func templateContent(kind registry.Kind, generated string, tmpl []byte) (string, error) {
	if kind == registry.KindHook {
		return string(tmpl), nil
	}
	a, err := schema.ParseArtifact(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	if a.HasMeta {
		return string(tmpl), nil
	}
	base, err := schema.ParseArtifact([]byte(generated))
	if err != nil {
		return "", fmt.Errorf("parse generated %s: %w", kind, err)
	}
	base.Body = a.Body
	out, err := schema.RenderArtifact(base)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", kind, err)
	}
	return string(out), nil
}

// loadSettings parses config.json, or returns defaults for the detected
// language when it does not exist yet.
func loadSettings(w *target.Writer, dir string) (*engine.Settings, error) {
	data, err := w.Read(target.SettingsPath())
	if errors.Is(err, fs.ErrNotExist) {
		lang, derr := engine.Detect(dir)
		if derr != nil {
			lang = engine.TypeScript
		}
		return engine.NewSettings(lang), nil
	}
	if err != nil {
		return nil, err
	}
	return engine.ParseSettings(data)
}

// openInEditor runs $EDITOR (which may carry arguments) on path.
func openInEditor(ctx context.Context, exec system.CommandExecutor, path string) error {
	editor := os.Getenv("EDITOR")
	if strings.TrimSpace(editor) == "" {
		editor = defaultEditor
	}
	words, err := shellquote.Split(editor)
	if err != nil || len(words) == 0 {
		return fmt.Errorf("parse $EDITOR %q: %v", editor, err)
	}
	logging.UserInfo("Opening in %s...", words[0])
	if err := exec.ExecuteInteractive(ctx, words[0], append(words[1:], path)...); err != nil {
		return fmt.Errorf("open editor: %w", err)
	}
	return nil
}

func newAddCmd(kind registry.Kind, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   string(kind) + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			req := addRequest{Kind: kind, Name: args[0], Template: addTemplate, Force: addForce}
			if kind == registry.KindHook {
				req.Event = addEvent
			}
			rel, err := addArtifact(ProjectDir(), newGenerator(cfg), req)
			if err != nil {
				return err
			}
			logging.UserSuccess("Created %s", filepath.ToSlash(rel))
			if req.Event != "" {
				logging.UserSuccess("Bound to %s in %s", req.Event, filepath.ToSlash(target.SettingsPath()))
			}
			if addEdit {
				return openInEditor(cmd.Context(), system.DefaultExecutor(), filepath.Join(ProjectDir(), rel))
			}
			return nil
		},
	}
	c.Flags().StringVarP(&addTemplate, "template", "t", "", "use this file as the content")
	c.Flags().BoolVarP(&addEdit, "edit", "e", false, "open in $EDITOR after creation")
	c.Flags().BoolVarP(&addForce, "force", "f", false, "overwrite an existing file")
	if kind == registry.KindHook {
		c.Flags().StringVar(&addEvent, "event", "", "hook event to bind in config.json (e.g. PostToolUse)")
	}
	return c
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an agent, slash command or hook to .claude/",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	addCmd.AddCommand(
		newAddCmd(registry.KindAgent, "Add a subagent"),
		newAddCmd(registry.KindCommand, "Add a slash command"),
		newAddCmd(registry.KindHook, "Add a hook script"),
	)
	rootCmd.AddCommand(addCmd)
}
