package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/probe"
	"github.com/chaz8081/claude-forge/internal/registry"
	"github.com/chaz8081/claude-forge/internal/target"
)

// Default artifacts written by a full (non-minimal) generation.
var (
	DefaultAgents   = []string{"code-reviewer", "security-scanner"}
	DefaultCommands = []string{"analyze", "refactor"}
	DefaultHooks    = []string{"format"}
)

// Options selects what a generation produces. Nil artifact lists fall back
// to the defaults; an empty non-nil list writes none.
type Options struct {
	Minimal  bool
	Agents   []string
	Commands []string
	Hooks    []string
}

func (o Options) agents() []string   { return orDefault(o.Agents, DefaultAgents) }
func (o Options) commands() []string { return orDefault(o.Commands, DefaultCommands) }
func (o Options) hooks() []string    { return orDefault(o.Hooks, DefaultHooks) }

func orDefault(v, def []string) []string {
	if v == nil {
		return def
	}
	return v
}

// Plan holds every document of a generation, in write order.
type Plan struct {
	Language  Language
	Probe     probe.Result
	Documents []target.Document
}

// Paths returns the project-relative path of each planned document.
func (p *Plan) Paths() []string {
	out := make([]string, len(p.Documents))
	for i, d := range p.Documents {
		out[i] = d.Path
	}
	return out
}

// Result summarizes a generation written to disk.
type Result struct {
	Plan    *Plan
	Ops     []target.Op
	Written int
	Skipped int
}

// Generator turns a language into a complete .claude layout.
type Generator struct {
	Registry *registry.Registry
	Prober   *probe.Prober
}

// NewGenerator returns a Generator backed by reg and prober.
func NewGenerator(reg *registry.Registry, prober *probe.Prober) *Generator {
	return &Generator{Registry: reg, Prober: prober}
}

// ResolveLanguage returns the explicitly named language when set, otherwise
// the detected one. ErrNotDetected is returned unchanged so callers can
// prompt or fall back.
func ResolveLanguage(dir, explicit string) (Language, error) {
	if explicit != "" {
		return ParseLanguage(explicit)
	}
	return Detect(dir)
}

// Plan builds all documents for dir in memory. An existing memory document
// in dir is used as the composition base so only its tools section changes.
func (g *Generator) Plan(dir string, lang Language, opts Options) (*Plan, error) {
	res := g.Prober.ProbeAll()
	plan := &Plan{Language: lang, Probe: res}

	base, err := g.memoryBase(dir, lang)
	if err != nil {
		return nil, err
	}
	plan.Documents = append(plan.Documents, target.Document{
		Path:    target.MemoryPath(),
		Content: Compose(base, res),
		Mode:    0o644,
		Policy:  target.Replace,
	})

	if !opts.Minimal {
		settings := NewSettings(lang)
		for _, h := range opts.hooks() {
			if h == "format" {
				settings.BindHook(DefaultHookEvent, filepath.ToSlash(target.ArtifactPath(registry.KindHook, h)))
			}
		}
		text, err := settings.Render()
		if err != nil {
			return nil, err
		}
		plan.Documents = append(plan.Documents, target.Document{Path: target.SettingsPath(), Content: text, Mode: 0o644})
	}

	ignore, err := g.Registry.Resolve(registry.KindIgnore, "")
	if err != nil {
		return nil, err
	}
	plan.Documents = append(plan.Documents, target.Document{Path: target.IgnorePath(), Content: ignore, Mode: 0o644})

	if opts.Minimal {
		return plan, nil
	}
	for _, set := range []struct {
		kind  registry.Kind
		names []string
	}{
		{registry.KindAgent, opts.agents()},
		{registry.KindCommand, opts.commands()},
		{registry.KindHook, opts.hooks()},
	} {
		for _, name := range set.names {
			doc, err := g.Artifact(set.kind, name)
			if err != nil {
				return nil, err
			}
			plan.Documents = append(plan.Documents, doc)
		}
	}
	return plan, nil
}

// Artifact resolves a single named agent, command or hook into a document.
func (g *Generator) Artifact(kind registry.Kind, name string) (target.Document, error) {
	text, err := g.Registry.Resolve(kind, name)
	if err != nil {
		return target.Document{}, fmt.Errorf("resolve %s %q: %w", kind, name, err)
	}
	return target.Document{
		Path:    target.ArtifactPath(kind, name),
		Content: text,
		Mode:    target.ArtifactMode(kind),
	}, nil
}

// Generate plans and writes the layout into dir.
func (g *Generator) Generate(dir string, lang Language, opts Options, wopts target.InstallOpts) (*Result, error) {
	plan, err := g.Plan(dir, lang, opts)
	if err != nil {
		return nil, err
	}
	w := target.NewWriter(dir)
	dirs := []string{target.ConfigDir}
	for _, k := range registry.NamedKinds() {
		dirs = append(dirs, target.KindDir(k))
	}
	if !wopts.DryRun {
		if err := w.EnsureDirs(dirs...); err != nil {
			return nil, err
		}
	}

	ops, err := w.WriteAll(plan.Documents, wopts)
	res := &Result{Plan: plan, Ops: ops}
	for _, op := range ops {
		if op.Status == target.OpSkipped {
			res.Skipped++
		} else {
			res.Written++
		}
	}
	if err != nil {
		return res, err
	}
	logging.Info("generated configuration", "dir", dir, "language", lang.String(),
		"documents", len(plan.Documents), "skipped", res.Skipped)
	return res, nil
}

// Sync re-splices the tools section of an existing memory document against
// a fresh probe.
func (g *Generator) Sync(dir string) (target.Op, probe.Result, error) {
	w := target.NewWriter(dir)
	data, err := w.Read(target.MemoryPath())
	if err != nil {
		return target.Op{}, nil, fmt.Errorf("read %s: %w", target.MemoryPath(), err)
	}
	res := g.Prober.ProbeAll()
	op, err := w.Write(target.Document{
		Path:    target.MemoryPath(),
		Content: Compose(string(data), res),
		Mode:    0o644,
		Policy:  target.Replace,
	}, target.InstallOpts{})
	return op, res, err
}

func (g *Generator) memoryBase(dir string, lang Language) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, target.MemoryPath()))
	switch {
	case err == nil:
		logging.Debug("using existing memory document as base", "dir", dir)
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return g.Registry.Resolve(registry.KindMemory, lang.String())
	default:
		return "", fmt.Errorf("read existing memory document: %w", err)
	}
}
