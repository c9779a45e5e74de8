// Package config loads claude-forge preferences from forge.yaml files and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/probe"
	"github.com/chaz8081/claude-forge/internal/registry"
	yaml "gopkg.in/yaml.v3"
)

// ErrNoConfig is returned when neither a global nor a project file exists.
var ErrNoConfig = errors.New("no configuration found")

// Filenames lists the project config filenames in priority order.
var Filenames = []string{"forge.yaml", ".forge.yaml"}

const appName = "claude-forge"

// Config is a forge.yaml file.
type Config struct {
	Language       string         `yaml:"language,omitempty"`
	Minimal        *bool          `yaml:"minimal,omitempty"`
	SkipTools      []string       `yaml:"skip_tools,omitempty"`
	InstallCommand string         `yaml:"install_command,omitempty"`
	Agents         []string       `yaml:"agents,omitempty"`
	Commands       []string       `yaml:"commands,omitempty"`
	Hooks          []string       `yaml:"hooks,omitempty"`
	Templates      []TemplatePack `yaml:"templates,omitempty"`
}

// TemplatePack points to a git repository of templates.
type TemplatePack struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Ref  string `yaml:"ref"`
	Path string `yaml:"path,omitempty"` // subdirectory holding agents/, commands/ ...
}

// IsMinimal reports whether minimal generation is configured.
func (c *Config) IsMinimal() bool { return c.Minimal != nil && *c.Minimal }

// GlobalPath returns $XDG_CONFIG_HOME/claude-forge/forge.yaml, falling back
// to ~/.config.
func GlobalPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, appName, Filenames[0])
}

// CacheDir returns the directory git template packs are cloned into.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "."+appName, "cache")
}

// ProjectPath returns the config file present in projectDir.
func ProjectPath(projectDir string) (string, bool) {
	for _, name := range Filenames {
		p := filepath.Join(projectDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return filepath.Join(projectDir, Filenames[0]), false
}

// LoadFile reads and parses a config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes forge.yaml content.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// Save writes c to path, prefixed with header. The header should already be
// made of '#' comment lines.
func Save(c *Config, path, header string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(header+string(data)), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks language names, tool names and template packs.
func (c *Config) Validate() error {
	if c.Language != "" {
		if _, err := engine.ParseLanguage(c.Language); err != nil {
			return fmt.Errorf("language: %w", err)
		}
	}
	for _, name := range c.SkipTools {
		if _, ok := probe.Lookup(name); !ok {
			return fmt.Errorf("skip_tools: unknown tool %q", name)
		}
	}
	seen := map[string]bool{}
	for _, t := range c.Templates {
		if t.Name == "" {
			return fmt.Errorf("template pack with url %q must have a name", t.URL)
		}
		if seen[t.Name] {
			return fmt.Errorf("template pack %q is defined twice", t.Name)
		}
		seen[t.Name] = true
		if t.URL == "" {
			return fmt.Errorf("template pack %q must specify a url", t.Name)
		}
		if t.Ref == "" {
			return fmt.Errorf("template pack %q must specify a ref (use %q to track the default branch)", t.Name, registry.RefLatest)
		}
	}
	return nil
}

// Packs returns a git source for every configured template pack, cached
// under cacheDir.
func (c *Config) Packs(cacheDir string) []*registry.GitPack {
	packs := make([]*registry.GitPack, 0, len(c.Templates))
	for _, t := range c.Templates {
		packs = append(packs, &registry.GitPack{
			PackName:  t.Name,
			URL:       t.URL,
			Ref:       t.Ref,
			Path:      t.Path,
			CachePath: filepath.Join(cacheDir, t.Name),
		})
	}
	return packs
}

// Sources returns the packs as registry sources in configured order.
func (c *Config) Sources(cacheDir string) []registry.Source {
	packs := c.Packs(cacheDir)
	out := make([]registry.Source, len(packs))
	for i, p := range packs {
		out[i] = p
	}
	return out
}

// GenerateOptions maps the artifact preferences onto generator options.
func (c *Config) GenerateOptions() engine.Options {
	return engine.Options{
		Minimal:  c.IsMinimal(),
		Agents:   c.Agents,
		Commands: c.Commands,
		Hooks:    c.Hooks,
	}
}
