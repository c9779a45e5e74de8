package engine

import (
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/chaz8081/claude-forge/internal/logging"
)

type frameworkRule struct {
	deps  []string
	label string
}

// Tables are checked in order; the first declared dependency wins.
var (
	jsFrameworks = []frameworkRule{
		{[]string{"next"}, "Next.js"},
		{[]string{"react"}, "React"},
		{[]string{"vue"}, "Vue"},
		{[]string{"express"}, "Express"},
		{[]string{"fastify"}, "Fastify"},
		{[]string{"@nestjs/core", "nestjs"}, "NestJS"},
	}
	pyFrameworks = []frameworkRule{
		{[]string{"django"}, "Django"},
		{[]string{"fastapi"}, "FastAPI"},
		{[]string{"flask"}, "Flask"},
	}
	rustFrameworks = []frameworkRule{
		{[]string{"axum"}, "Axum"},
		{[]string{"actix-web"}, "Actix Web"},
		{[]string{"rocket"}, "Rocket"},
	}
)

// DetectFramework returns a framework label for the project, or "" when
// nothing is recognised. It never fails; unreadable manifests yield "".
func DetectFramework(fsys fs.FS, lang Language) string {
	switch lang {
	case TypeScript, JavaScript:
		pkg, ok := readPackageJSON(fsys)
		if !ok {
			return ""
		}
		return matchFramework(jsFrameworks, pkg.Dependencies)
	case Python:
		return matchFramework(pyFrameworks, pythonDependencies(fsys))
	case Rust:
		return matchFramework(rustFrameworks, cargoDependencies(fsys))
	}
	return ""
}

func matchFramework[V any](rules []frameworkRule, deps map[string]V) string {
	if len(deps) == 0 {
		return ""
	}
	for _, r := range rules {
		for _, d := range r.deps {
			if _, ok := deps[d]; ok {
				return r.label
			}
		}
	}
	return ""
}

type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// pythonDependencies collects PEP 621 and Poetry dependency names from
// pyproject.toml, lowercased.
func pythonDependencies(fsys fs.FS) map[string]bool {
	data, err := fs.ReadFile(fsys, "pyproject.toml")
	if err != nil {
		return nil
	}
	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		logging.Debug("unreadable pyproject.toml", "error", err)
		return nil
	}

	deps := make(map[string]bool)
	for _, req := range doc.Project.Dependencies {
		if name := requirementName(req); name != "" {
			deps[name] = true
		}
	}
	for name := range doc.Tool.Poetry.Dependencies {
		deps[strings.ToLower(name)] = true
	}
	return deps
}

// requirementName extracts the distribution name from a requirement string
// such as "fastapi[all]>=0.110".
func requirementName(req string) string {
	req = strings.TrimSpace(req)
	if i := strings.IndexAny(req, " <>=!~;[("); i >= 0 {
		req = req[:i]
	}
	return strings.ToLower(req)
}

type cargoManifest struct {
	Dependencies map[string]any `toml:"dependencies"`
}

func cargoDependencies(fsys fs.FS) map[string]any {
	data, err := fs.ReadFile(fsys, "Cargo.toml")
	if err != nil {
		return nil
	}
	var doc cargoManifest
	if err := toml.Unmarshal(data, &doc); err != nil {
		logging.Debug("unreadable Cargo.toml", "error", err)
		return nil
	}
	return doc.Dependencies
}
