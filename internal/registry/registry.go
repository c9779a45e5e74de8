// Package registry resolves template text for the artifacts claude-forge
// generates. Built-in templates are compiled into the binary; git template
// packs configured by the user are consulted first.
package registry

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/chaz8081/claude-forge/internal/logging"
)

// Kind is a category of generated artifact.
type Kind string

const (
	KindAgent   Kind = "agent"
	KindCommand Kind = "command"
	KindHook    Kind = "hook"
	KindMemory  Kind = "memory"
	KindIgnore  Kind = "ignore"
)

// ErrUnknownKind is returned for a Kind outside the known set.
var ErrUnknownKind = errors.New("unknown template kind")

var kinds = []Kind{KindAgent, KindCommand, KindHook, KindMemory, KindIgnore}

// Kinds returns every known kind.
func Kinds() []Kind { return append([]Kind(nil), kinds...) }

// NamedKinds returns the kinds whose templates are addressed by name.
func NamedKinds() []Kind { return []Kind{KindAgent, KindCommand, KindHook} }

// ParseKind accepts a kind in singular or plural form.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s"))
	if k.Valid() {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Named reports whether templates of k are selected by name.
func (k Kind) Named() bool { return k == KindAgent || k == KindCommand || k == KindHook }

// Dir is the directory holding this kind's templates, both in template packs
// and in the generated .claude layout.
func (k Kind) Dir() string {
	switch k {
	case KindMemory, KindIgnore:
		return string(k)
	}
	return string(k) + "s"
}

// Ext is the file extension of this kind's artifacts.
func (k Kind) Ext() string {
	if k == KindHook {
		return ".sh"
	}
	if k == KindIgnore {
		return ""
	}
	return ".md"
}

// FileName returns the artifact file name for name, e.g. "format.sh".
func (k Kind) FileName(name string) string {
	return name + k.Ext()
}

// templatePath is the location of a template inside a pack tree.
func templatePath(kind Kind, name string) string {
	if kind == KindIgnore {
		return path.Join(kind.Dir(), ignoreFile)
	}
	return path.Join(kind.Dir(), kind.FileName(name))
}

// Source provides templates by exact name.
type Source interface {
	// Name identifies the source in listings and logs.
	Name() string
	// Lookup returns the template for an exact name. A missing template is
	// reported as ok=false, not as an error.
	Lookup(kind Kind, name string) (text string, ok bool, err error)
	// List returns the template names available for kind.
	List(kind Kind) ([]string, error)
}

// Entry is one template available from some source.
type Entry struct {
	Kind   Kind
	Name   string
	Source string
}

// Registry layers template sources over the built-in templates.
type Registry struct {
	sources []Source
	builtin *Embedded
}

// New returns a Registry that consults sources in order before the
// built-in templates.
func New(sources ...Source) *Registry {
	return &Registry{sources: sources, builtin: NewEmbedded()}
}

// Builtin returns the built-in template source.
func (r *Registry) Builtin() *Embedded { return r.builtin }

// Resolve returns the template text for kind and selector. The selector is a
// template name, or a language identifier for KindMemory. Resolution never
// fails for a known kind: sources that cannot serve the request are skipped
// and the built-in fallback rules apply.
func (r *Registry) Resolve(kind Kind, selector string) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	name := canonicalName(kind, selector)
	if kind.Named() && !ValidName(name) {
		return r.builtin.scaffold(kind, name)
	}
	for _, src := range r.sources {
		text, ok, err := src.Lookup(kind, name)
		if err != nil {
			logging.Warn("template source unavailable", "source", src.Name(), "error", err)
			continue
		}
		if ok {
			logging.Debug("resolved template", "kind", kind, "name", name, "source", src.Name())
			return text, nil
		}
	}
	return r.builtin.Resolve(kind, name)
}

// List returns every named template for kind across all sources. A name
// served by an earlier source shadows the same name further down.
func (r *Registry) List(kind Kind) ([]Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	seen := make(map[string]bool)
	var out []Entry
	add := func(src Source) {
		names, err := src.List(kind)
		if err != nil {
			logging.Warn("list templates failed", "source", src.Name(), "error", err)
			return
		}
		for _, n := range names {
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, Entry{Kind: kind, Name: n, Source: src.Name()})
		}
	}
	for _, src := range r.sources {
		add(src)
	}
	add(r.builtin)

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// hookAliases maps legacy hook names to their canonical built-ins.
var hookAliases = map[string]string{
	"prettier-format": "format",
	"eslint-check":    "lint",
}

// ValidName reports whether name can be used as a single file name inside a
// kind directory.
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func canonicalName(kind Kind, selector string) string {
	name := strings.TrimSpace(selector)
	if kind == KindMemory {
		return strings.ToLower(name)
	}
	if kind == KindHook {
		if alias, ok := hookAliases[name]; ok {
			return alias
		}
	}
	return name
}
