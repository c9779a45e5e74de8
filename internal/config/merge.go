package config

import (
	"fmt"
	"os"
)

// LoadMerged loads the global file at globalPath and the project file in
// projectDir, with project values taking priority.
//
// Merge rules:
//   - scalars: project value when set
//   - lists: project list replaces the global one when present
//   - templates: merged by name; project overrides global for the same name
//
// Returns ErrNoConfig only if neither file exists.
func LoadMerged(projectDir, globalPath string) (*Config, error) {
	var global, project *Config

	if data, err := os.ReadFile(globalPath); err == nil {
		g, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("global config %s: %w", globalPath, err)
		}
		global = g
	}
	if p, ok := ProjectPath(projectDir); ok {
		c, err := LoadFile(p)
		if err != nil {
			return nil, fmt.Errorf("project config %s: %w", p, err)
		}
		project = c
	}

	switch {
	case global == nil && project == nil:
		return nil, fmt.Errorf("%w: checked %s and %s", ErrNoConfig, globalPath, projectDir)
	case global == nil:
		return project, nil
	case project == nil:
		return global, nil
	}
	return Merge(global, project), nil
}

// Merge overlays project onto global without modifying either.
func Merge(global, project *Config) *Config {
	m := *global
	if project.Language != "" {
		m.Language = project.Language
	}
	if project.Minimal != nil {
		m.Minimal = project.Minimal
	}
	if project.InstallCommand != "" {
		m.InstallCommand = project.InstallCommand
	}
	if project.SkipTools != nil {
		m.SkipTools = project.SkipTools
	}
	if project.Agents != nil {
		m.Agents = project.Agents
	}
	if project.Commands != nil {
		m.Commands = project.Commands
	}
	if project.Hooks != nil {
		m.Hooks = project.Hooks
	}

	byName := make(map[string]TemplatePack)
	var order []string
	for _, t := range global.Templates {
		byName[t.Name] = t
		order = append(order, t.Name)
	}
	for _, t := range project.Templates {
		if _, exists := byName[t.Name]; !exists {
			order = append(order, t.Name)
		}
		byName[t.Name] = t
	}
	m.Templates = nil
	for _, name := range order {
		m.Templates = append(m.Templates, byName[name])
	}
	return &m
}

// Overrides lists the settings the project file overrides, in field order.
// Template packs are reported as "templates.<name>".
func Overrides(global, project *Config) []string {
	if global == nil || project == nil {
		return nil
	}
	var out []string
	if project.Language != "" && global.Language != "" {
		out = append(out, "language")
	}
	if project.Minimal != nil && global.Minimal != nil {
		out = append(out, "minimal")
	}
	if project.SkipTools != nil && global.SkipTools != nil {
		out = append(out, "skip_tools")
	}
	if project.InstallCommand != "" && global.InstallCommand != "" {
		out = append(out, "install_command")
	}
	if project.Agents != nil && global.Agents != nil {
		out = append(out, "agents")
	}
	if project.Commands != nil && global.Commands != nil {
		out = append(out, "commands")
	}
	if project.Hooks != nil && global.Hooks != nil {
		out = append(out, "hooks")
	}
	names := make(map[string]bool, len(global.Templates))
	for _, t := range global.Templates {
		names[t.Name] = true
	}
	for _, t := range project.Templates {
		if names[t.Name] {
			out = append(out, "templates."+t.Name)
		}
	}
	return out
}
