package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chaz8081/claude-forge/internal/ignore"
	"github.com/chaz8081/claude-forge/internal/registry"
	"github.com/chaz8081/claude-forge/internal/target"
	"github.com/chaz8081/claude-forge/pkg/schema"
)

// Report lists the problems found in a project's configuration. Errors make
// the configuration unusable; warnings do not.
type Report struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no errors were found.
func (r *Report) OK() bool { return len(r.Errors) == 0 }

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate inspects the configuration generated into dir.
func Validate(dir string) *Report {
	r := &Report{}
	claudeDir := filepath.Join(dir, target.ConfigDir)
	if info, err := os.Stat(claudeDir); err != nil || !info.IsDir() {
		r.errorf("%s directory not found", target.ConfigDir)
		return r
	}

	if _, err := os.Stat(filepath.Join(dir, target.MemoryPath())); err != nil {
		r.errorf("%s not found", target.MemoryFile)
	}

	if data, err := os.ReadFile(filepath.Join(dir, target.SettingsPath())); err == nil {
		if _, err := ParseSettings(data); err != nil {
			r.errorf("%s validation failed: %v", target.SettingsFile, err)
		}
	}

	for _, kind := range registry.NamedKinds() {
		kdir := filepath.Join(dir, target.KindDir(kind))
		entries, err := os.ReadDir(kdir)
		if err != nil {
			r.errorf("%s directory not found", kind.Dir())
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), kind.Ext()) {
				continue
			}
			validateArtifact(r, kind, filepath.Join(kdir, e.Name()))
		}
	}

	if data, err := os.ReadFile(filepath.Join(dir, target.IgnorePath())); err == nil {
		validateIgnore(r, ignore.Parse(string(data)))
	}

	sort.Strings(r.Warnings)
	return r
}

func validateArtifact(r *Report, kind registry.Kind, p string) {
	rel := filepath.Join(kind.Dir(), filepath.Base(p))
	switch kind {
	case registry.KindHook:
		info, err := os.Stat(p)
		if err != nil {
			r.errorf("%s: %v", rel, err)
			return
		}
		if info.Mode().Perm()&0o111 == 0 {
			r.errorf("%s is not executable", rel)
		}
	case registry.KindAgent, registry.KindCommand:
		data, err := os.ReadFile(p)
		if err != nil {
			r.errorf("%s: %v", rel, err)
			return
		}
		a, err := schema.ParseArtifact(data)
		if err != nil {
			r.errorf("%s: %v", rel, err)
			return
		}
		if !a.HasMeta {
			r.warnf("%s has no frontmatter", rel)
		} else if a.Description == "" {
			r.warnf("%s has no description", rel)
		}
	}
}

// validateIgnore reports invalid patterns, and patterns that hide the
// generated configuration from the assistant.
func validateIgnore(r *Report, m *ignore.Matcher) {
	for _, issue := range m.Issues {
		r.errorf("%s %s", target.IgnoreFile, issue)
	}
	if m.Match(filepath.ToSlash(target.MemoryPath()), false) {
		r.warnf("%s excludes %s", target.IgnoreFile, filepath.ToSlash(target.MemoryPath()))
	}
	for _, kind := range registry.NamedKinds() {
		rel := filepath.ToSlash(target.KindDir(kind))
		if m.Match(rel, true) {
			r.warnf("%s excludes %s/", target.IgnoreFile, rel)
		}
	}
}
