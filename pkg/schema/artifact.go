// Package schema parses and renders the markdown artifacts the host reads:
// agents and slash commands with YAML frontmatter.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

const delimiter = "---"

// ErrUnterminated is returned when an opening frontmatter delimiter has no
// closing one.
var ErrUnterminated = errors.New("frontmatter not terminated")

// Artifact is an agent or command file.
type Artifact struct {
	Name         string   `yaml:"name,omitempty"`
	Description  string   `yaml:"description,omitempty"`
	Tools        []string `yaml:"tools,omitempty"`
	AllowedTools string   `yaml:"allowed-tools,omitempty"`
	Model        string   `yaml:"model,omitempty"`
	Body         string   `yaml:"-"` // markdown after the frontmatter
	HasMeta      bool     `yaml:"-"`
}

// ParseArtifact splits YAML frontmatter from the markdown body. Content
// without frontmatter is all body.
func ParseArtifact(content []byte) (*Artifact, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, errors.New("empty content")
	}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	a := &Artifact{}

	if !strings.HasPrefix(text, delimiter+"\n") {
		a.Body = strings.TrimSpace(text)
		return a, nil
	}

	rest := text[len(delimiter)+1:]
	meta, body, ok := cutDelimiter(rest)
	if !ok {
		return nil, ErrUnterminated
	}
	if err := yaml.Unmarshal([]byte(meta), a); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	a.HasMeta = true
	a.Body = strings.TrimSpace(body)
	return a, nil
}

// cutDelimiter finds the closing delimiter line.
func cutDelimiter(s string) (meta, body string, ok bool) {
	if strings.HasPrefix(s, delimiter+"\n") || s == delimiter {
		return "", strings.TrimPrefix(s[len(delimiter):], "\n"), true
	}
	i := strings.Index(s, "\n"+delimiter+"\n")
	if i < 0 {
		if strings.HasSuffix(s, "\n"+delimiter) {
			return s[:len(s)-len(delimiter)-1], "", true
		}
		return "", "", false
	}
	return s[:i], s[i+len(delimiter)+2:], true
}

// RenderArtifact renders a back to markdown. Frontmatter is written only if
// at least one field is set.
func RenderArtifact(a *Artifact) ([]byte, error) {
	var b strings.Builder
	if a.Name != "" || a.Description != "" || len(a.Tools) > 0 || a.AllowedTools != "" || a.Model != "" {
		meta, err := yaml.Marshal(a)
		if err != nil {
			return nil, err
		}
		b.WriteString(delimiter + "\n")
		b.Write(meta)
		b.WriteString(delimiter + "\n\n")
	}
	if a.Body != "" {
		b.WriteString(strings.TrimSpace(a.Body))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
