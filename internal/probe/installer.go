package probe

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/system"
	shellquote "github.com/kballard/go-shellquote"
)

// Status is the outcome of installing or updating one tool.
type Status string

const (
	StatusInstalled        Status = "installed"
	StatusUpdated          Status = "updated"
	StatusAlreadyInstalled Status = "already installed"
	StatusNotInstalled     Status = "not installed"
	StatusSkipped          Status = "skipped"
	StatusWouldInstall     Status = "would install"
	StatusFailed           Status = "failed"
)

// Outcome reports what happened to a single tool.
type Outcome struct {
	Tool    Tool
	Status  Status
	Command string
	Err     error
}

// InstallOptions controls Install and Update.
type InstallOptions struct {
	Skip   []string // binary or package names to leave alone
	DryRun bool
}

// manager describes how one package manager installs and upgrades packages.
type manager struct {
	name    string
	install string
	upgrade string
	pkg     func(Tool) string
}

var (
	brewManager = manager{
		name:    "brew",
		install: "brew install",
		upgrade: "brew upgrade",
		pkg:     func(t Tool) string { return t.Package },
	}
	aptManager = manager{
		name:    "apt",
		install: "sudo apt-get install -y",
		upgrade: "sudo apt-get install --only-upgrade -y",
		pkg:     func(t Tool) string { return t.AptPackage },
	}
	cargoManager = manager{
		name:    "cargo",
		install: "cargo install --locked",
		upgrade: "cargo install --locked --force",
		pkg:     func(t Tool) string { return t.CargoCrate },
	}
)

// Installer installs catalog tools through the host package manager.
type Installer struct {
	exec   system.CommandExecutor
	prober *Prober

	// GOOS selects the manager chain; defaults to runtime.GOOS.
	GOOS string

	// Command overrides the install command prefix, e.g. "brew install".
	// The package name is appended.
	Command string
}

// NewInstaller returns an Installer. A nil executor uses the OS executor.
func NewInstaller(exec system.CommandExecutor) *Installer {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &Installer{exec: exec, prober: New(exec), GOOS: runtime.GOOS}
}

// Install installs every missing catalog tool. Tools are handled one at a
// time since package managers hold a global lock; a failure is recorded on
// its outcome and the batch continues.
func (i *Installer) Install(ctx context.Context, opts InstallOptions) []Outcome {
	installed := i.prober.ProbeAll()

	var outcomes []Outcome
	for _, t := range Tools() {
		out := Outcome{Tool: t}
		switch {
		case skipped(t, opts.Skip):
			out.Status = StatusSkipped
		case installed.Installed(t.Binary):
			out.Status = StatusAlreadyInstalled
		default:
			out.Command, out.Err = i.run(ctx, t, false, opts.DryRun)
			out.Status = outcomeStatus(out.Err, opts.DryRun, StatusInstalled)
		}
		logging.Debug("install outcome", "tool", t.Binary, "status", out.Status, "command", out.Command)
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// Update upgrades every installed catalog tool.
func (i *Installer) Update(ctx context.Context, opts InstallOptions) []Outcome {
	installed := i.prober.ProbeAll()

	var outcomes []Outcome
	for _, t := range Tools() {
		out := Outcome{Tool: t}
		switch {
		case skipped(t, opts.Skip):
			out.Status = StatusSkipped
		case !installed.Installed(t.Binary):
			out.Status = StatusNotInstalled
		default:
			out.Command, out.Err = i.run(ctx, t, true, opts.DryRun)
			out.Status = outcomeStatus(out.Err, opts.DryRun, StatusUpdated)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// run tries each manager in the platform chain until one succeeds and
// returns the command line that was used (or would be used).
func (i *Installer) run(ctx context.Context, t Tool, upgrade, dryRun bool) (string, error) {
	plans, err := i.plans(t, upgrade)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, argv := range plans {
		line := strings.Join(argv, " ")
		if dryRun {
			return line, nil
		}
		out, err := i.exec.Execute(ctx, argv[0], argv[1:]...)
		if err == nil {
			return line, nil
		}
		lastErr = fmt.Errorf("%s: %w: %s", line, err, strings.TrimSpace(string(out)))
		logging.Debug("install attempt failed", "tool", t.Binary, "error", lastErr)
	}
	if lastErr == nil {
		return "", fmt.Errorf("no package manager available for %s", t.Package)
	}
	return "", lastErr
}

// plans returns the argv candidates for a tool, in preference order.
func (i *Installer) plans(t Tool, upgrade bool) ([][]string, error) {
	if i.Command != "" {
		argv, err := commandArgs(i.Command, t.Package)
		if err != nil {
			return nil, err
		}
		return [][]string{argv}, nil
	}

	var plans [][]string
	for _, m := range i.managers() {
		prefix := m.install
		if upgrade {
			prefix = m.upgrade
		}
		argv, err := commandArgs(prefix, m.pkg(t))
		if err != nil {
			return nil, err
		}
		plans = append(plans, argv)
	}
	return plans, nil
}

// managers returns the usable package managers for the platform.
func (i *Installer) managers() []manager {
	var chain []manager
	switch i.GOOS {
	case "darwin":
		chain = []manager{brewManager, cargoManager}
	case "linux":
		chain = []manager{aptManager, cargoManager}
	default:
		chain = []manager{cargoManager}
	}

	var usable []manager
	for _, m := range chain {
		bin := m.name
		if m.name == "apt" {
			bin = "apt-get"
		}
		if _, err := i.exec.LookPath(bin); err == nil {
			usable = append(usable, m)
		}
	}
	return usable
}

// commandArgs splits a shell-style command prefix and appends pkg.
func commandArgs(prefix, pkg string) ([]string, error) {
	words, err := shellquote.Split(prefix)
	if err != nil {
		return nil, fmt.Errorf("parse install command %q: %w", prefix, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty install command")
	}
	return append(words, pkg), nil
}

func skipped(t Tool, skip []string) bool {
	return slices.Contains(skip, t.Binary) || slices.Contains(skip, t.Package)
}

func outcomeStatus(err error, dryRun bool, ok Status) Status {
	switch {
	case err != nil:
		return StatusFailed
	case dryRun:
		return StatusWouldInstall
	default:
		return ok
	}
}
