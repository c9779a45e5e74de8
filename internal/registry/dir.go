package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DirSource serves templates from a directory laid out like the built-ins:
// agents/<name>.md, commands/<name>.md, hooks/<name>.sh, memory/<lang>.md
// and ignore/claudeignore.
type DirSource struct {
	SourceName string
	Root       string
}

func (d *DirSource) Name() string { return d.SourceName }

func (d *DirSource) Lookup(kind Kind, name string) (string, bool, error) {
	if !fs.ValidPath(templatePath(kind, name)) {
		return "", false, nil
	}
	b, err := fs.ReadFile(os.DirFS(d.Root), templatePath(kind, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s %q from %s: %w", kind, name, d.SourceName, err)
	}
	return string(b), true, nil
}

func (d *DirSource) List(kind Kind) ([]string, error) {
	return listTemplates(os.DirFS(d.Root), kind)
}
