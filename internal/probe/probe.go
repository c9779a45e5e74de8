// Package probe checks which modern CLI tools are available on the host and
// installs the missing ones through the platform package manager.
package probe

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/chaz8081/claude-forge/internal/logging"
	"github.com/chaz8081/claude-forge/internal/system"
	"golang.org/x/sync/errgroup"
)

// UnknownVersion is reported when an installed tool cannot describe itself.
const UnknownVersion = "unknown"

// maxVersionProbes bounds concurrent version subprocesses.
const maxVersionProbes = 4

// Result maps a tool binary name to whether it is installed.
type Result map[string]bool

// Installed reports whether name was found. Unknown names are not installed.
func (r Result) Installed(name string) bool { return r[name] }

// Count returns how many of the given tools are installed.
func (r Result) Count(tools []Tool) int {
	n := 0
	for _, t := range tools {
		if r[t.Binary] {
			n++
		}
	}
	return n
}

// Missing returns the tools that are not installed, in catalog order.
func (r Result) Missing(tools []Tool) []Tool {
	var out []Tool
	for _, t := range tools {
		if !r[t.Binary] {
			out = append(out, t)
		}
	}
	return out
}

// AllInstalled returns a result with every catalog tool present.
func AllInstalled() Result {
	r := Result{}
	for _, n := range ToolNames() {
		r[n] = true
	}
	return r
}

// NoneInstalled returns a result with every catalog tool absent.
func NoneInstalled() Result {
	r := Result{}
	for _, n := range ToolNames() {
		r[n] = false
	}
	return r
}

// Prober checks tool availability through a CommandExecutor.
type Prober struct {
	exec system.CommandExecutor
}

// New returns a Prober. A nil executor uses the OS executor.
func New(exec system.CommandExecutor) *Prober {
	if exec == nil {
		exec = system.DefaultExecutor()
	}
	return &Prober{exec: exec}
}

// Probe checks each name against the executable search path. Lookups are
// independent; one failing name never affects another.
func (p *Prober) Probe(names ...string) Result {
	res := make(Result, len(names))
	for _, name := range names {
		_, err := p.exec.LookPath(name)
		res[name] = err == nil
		logging.Debug("probed tool", "tool", name, "installed", res[name])
	}
	return res
}

// ProbeAll probes the full tool catalog.
func (p *Prober) ProbeAll() Result {
	return p.Probe(ToolNames()...)
}

// Version returns the first line of `name --version`. The boolean is false
// when the tool is not installed. Invocation failures and non-zero exits
// degrade to UnknownVersion.
func (p *Prober) Version(ctx context.Context, name string) (string, bool) {
	if _, err := p.exec.LookPath(name); err != nil {
		return "", false
	}

	out, err := p.exec.Execute(ctx, name, "--version")
	if err != nil {
		logging.Debug("version probe failed", "tool", name, "error", err)
		return UnknownVersion, true
	}

	line := firstLine(out)
	if line == "" {
		return UnknownVersion, true
	}
	return line, true
}

// Versions probes the version of every installed name concurrently.
// Tools that are not installed are absent from the returned map.
func (p *Prober) Versions(ctx context.Context, names []string) map[string]string {
	versions := make([]string, len(names))
	found := make([]bool, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxVersionProbes)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			versions[i], found[i] = p.Version(gctx, name)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]string, len(names))
	for i, name := range names {
		if found[i] {
			out[name] = versions[i]
		}
	}
	return out
}

func firstLine(b []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(b))
	if sc.Scan() {
		return strings.TrimSpace(sc.Text())
	}
	return ""
}
