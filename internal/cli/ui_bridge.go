package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/chaz8081/claude-forge/internal/cli/ui"
	"github.com/chaz8081/claude-forge/internal/config"
	"github.com/chaz8081/claude-forge/internal/engine"
	"github.com/chaz8081/claude-forge/internal/registry"
	"github.com/chaz8081/claude-forge/internal/target"
)

// newBrowserService backs the template browser with the configured registry
// and the project's .claude/ directory.
func newBrowserService(dir string) (ui.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return browserBridge(dir, cfg), nil
}

func browserBridge(dir string, cfg *config.Config) ui.Bridge {
	reg := newRegistry(cfg)
	gen := engine.NewGenerator(reg, nil)
	w := target.NewWriter(dir)

	return ui.Bridge{
		ListFunc: func(kind registry.Kind) ([]ui.Row, error) {
			entries, err := reg.List(kind)
			if err != nil {
				return nil, err
			}
			rows := make([]ui.Row, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, ui.Row{
					Name:      e.Name,
					Source:    e.Source,
					Installed: w.Exists(target.ArtifactPath(kind, e.Name)),
				})
			}
			return rows, nil
		},
		PreviewFunc: func(kind registry.Kind, name string) (string, error) {
			return reg.Resolve(kind, name)
		},
		InstallFunc: func(kind registry.Kind, name string, force bool) (string, error) {
			if !w.Exists(target.ConfigDir) {
				return "", fmt.Errorf("no %s directory found. Run 'claude-forge init' first", target.ConfigDir)
			}
			doc, err := gen.Artifact(kind, name)
			if err != nil {
				return "", err
			}
			doc.Policy = target.FailExisting
			if _, err := w.Write(doc, target.InstallOpts{Force: force}); err != nil {
				if errors.Is(err, target.ErrExists) {
					return "", ui.ErrAlreadyInstalled
				}
				return "", err
			}
			return filepath.ToSlash(doc.Path), nil
		},
	}
}
