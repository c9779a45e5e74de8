// Package ui implements the interactive template browser.
package ui

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chaz8081/claude-forge/internal/registry"
)

// ErrAlreadyInstalled is returned by Install when the artifact exists and
// force is not set.
var ErrAlreadyInstalled = errors.New("already installed")

// Row is one template shown in the list panel.
type Row struct {
	Name      string
	Source    string
	Installed bool
}

// Service is what the browser needs from the rest of the application.
type Service interface {
	List(kind registry.Kind) ([]Row, error)
	Preview(kind registry.Kind, name string) (string, error)
	Install(kind registry.Kind, name string, force bool) (string, error)
}

// Bridge adapts plain functions to Service.
type Bridge struct {
	ListFunc    func(kind registry.Kind) ([]Row, error)
	PreviewFunc func(kind registry.Kind, name string) (string, error)
	InstallFunc func(kind registry.Kind, name string, force bool) (string, error)
}

// Validate reports the first missing function.
func (b Bridge) Validate() error {
	switch {
	case b.ListFunc == nil:
		return fmt.Errorf("template service ListFunc is required")
	case b.PreviewFunc == nil:
		return fmt.Errorf("template service PreviewFunc is required")
	case b.InstallFunc == nil:
		return fmt.Errorf("template service InstallFunc is required")
	}
	return nil
}

// List returns the rows for kind sorted by name.
func (b Bridge) List(kind registry.Kind) ([]Row, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	rows, err := b.ListFunc(kind)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (b Bridge) Preview(kind registry.Kind, name string) (string, error) {
	if err := validateKind(kind); err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("template name is required")
	}
	return b.PreviewFunc(kind, name)
}

func (b Bridge) Install(kind registry.Kind, name string, force bool) (string, error) {
	if err := validateKind(kind); err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("template name is required")
	}
	return b.InstallFunc(kind, name, force)
}

func validateKind(kind registry.Kind) error {
	for _, k := range registry.NamedKinds() {
		if k == kind {
			return nil
		}
	}
	return fmt.Errorf("unknown template kind %q (valid: agent, command, hook)", kind)
}
