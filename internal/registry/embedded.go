package registry

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/chaz8081/claude-forge/templates"
)

const (
	ignoreFile      = "claudeignore"
	genericMemory   = "generic"
	scriptingMemory = "python"
)

// dedicatedMemory lists the languages with their own memory document.
var dedicatedMemory = map[string]bool{"rust": true, "typescript": true}

// Embedded serves the templates compiled into the binary.
type Embedded struct {
	fsys      fs.FS
	scaffolds *template.Template
}

// NewEmbedded returns the built-in template source.
func NewEmbedded() *Embedded {
	fsys := templates.FS()
	return &Embedded{
		fsys:      fsys,
		scaffolds: template.Must(template.New("").ParseFS(fsys, "scaffold/*.tmpl")),
	}
}

func (e *Embedded) Name() string { return "builtin" }

// Lookup returns a built-in template for an exact name, without fallback.
func (e *Embedded) Lookup(kind Kind, name string) (string, bool, error) {
	if !ValidName(name) {
		return "", false, nil
	}
	b, err := fs.ReadFile(e.fsys, templatePath(kind, name))
	if err != nil {
		return "", false, nil
	}
	return string(b), true, nil
}

// List returns the built-in template names for kind.
func (e *Embedded) List(kind Kind) ([]string, error) {
	return listTemplates(e.fsys, kind)
}

// Resolve applies the built-in fallback rules:
//   - memory: dedicated document, else the scripting or generic document
//   - agent/command/hook: named built-in, else a scaffold carrying the name
//   - ignore: the single ignore-patterns document
func (e *Embedded) Resolve(kind Kind, name string) (string, error) {
	switch kind {
	case KindMemory:
		return e.memory(name)
	case KindIgnore:
		return e.read(templatePath(KindIgnore, ""))
	case KindAgent, KindCommand, KindHook:
		if text, ok, _ := e.Lookup(kind, name); ok {
			return text, nil
		}
		return e.scaffold(kind, name)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func (e *Embedded) memory(lang string) (string, error) {
	doc := genericMemory
	switch {
	case dedicatedMemory[lang]:
		doc = lang
	case lang == scriptingMemory:
		doc = scriptingMemory
	}
	return e.read(templatePath(KindMemory, doc))
}

func (e *Embedded) scaffold(kind Kind, name string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Name string }{Name: name}
	if err := e.scaffolds.ExecuteTemplate(&buf, string(kind)+kind.Ext()+".tmpl", data); err != nil {
		return "", fmt.Errorf("render %s scaffold: %w", kind, err)
	}
	return buf.String(), nil
}

func (e *Embedded) read(p string) (string, error) {
	b, err := fs.ReadFile(e.fsys, p)
	if err != nil {
		return "", fmt.Errorf("read builtin template %s: %w", p, err)
	}
	return string(b), nil
}

// listTemplates returns the template names under kind's directory in fsys.
// A missing directory yields no names.
func listTemplates(fsys fs.FS, kind Kind) ([]string, error) {
	if kind == KindIgnore {
		if _, err := fs.Stat(fsys, templatePath(kind, "")); err == nil {
			return []string{ignoreFile}, nil
		}
		return nil, nil
	}
	entries, err := fs.ReadDir(fsys, kind.Dir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s templates: %w", kind, err)
	}
	var names []string
	for _, ent := range entries {
		if ent.IsDir() || path.Ext(ent.Name()) != kind.Ext() {
			continue
		}
		names = append(names, strings.TrimSuffix(ent.Name(), kind.Ext()))
	}
	sort.Strings(names)
	return names, nil
}
