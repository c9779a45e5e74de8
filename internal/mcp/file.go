package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ServerConfig is one entry under mcpServers.
type ServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// File is an mcp.json document. Top-level keys other than mcpServers are
// kept as read.
type File struct {
	Servers map[string]ServerConfig
	other   map[string]json.RawMessage
}

const serversKey = "mcpServers"

// Load reads path. A missing file yields an empty document.
func Load(path string) (*File, error) {
	f := &File{Servers: map[string]ServerConfig{}, other: map[string]json.RawMessage{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &f.other); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if raw, ok := f.other[serversKey]; ok {
		if err := json.Unmarshal(raw, &f.Servers); err != nil {
			return nil, fmt.Errorf("parse %s %s: %w", path, serversKey, err)
		}
		delete(f.other, serversKey)
	}
	if f.Servers == nil {
		f.Servers = map[string]ServerConfig{}
	}
	return f, nil
}

// Names returns the configured server names, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Servers))
	for n := range f.Servers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is configured.
func (f *File) Has(name string) bool {
	_, ok := f.Servers[name]
	return ok
}

// Add sets the entry for name. It reports whether an entry was replaced.
func (f *File) Add(name string, cfg ServerConfig) bool {
	_, existed := f.Servers[name]
	f.Servers[name] = cfg
	return existed
}

// Remove deletes name and reports whether it was present.
func (f *File) Remove(name string) bool {
	if _, ok := f.Servers[name]; !ok {
		return false
	}
	delete(f.Servers, name)
	return true
}

// Render returns the indented JSON document.
func (f *File) Render() ([]byte, error) {
	doc := make(map[string]any, len(f.other)+1)
	for k, v := range f.other {
		doc[k] = v
	}
	doc[serversKey] = f.Servers
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Save writes the document to path.
func (f *File) Save(path string) error {
	b, err := f.Render()
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
