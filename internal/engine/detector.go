package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/chaz8081/claude-forge/internal/logging"
)

// ErrNotDetected is returned when no language marker is present. Callers
// typically prompt for a language or fall back to a default.
var ErrNotDetected = errors.New("no supported language detected")

const (
	packageManifest   = "package.json"
	typeCheckerConfig = "tsconfig.json"
	typeCheckerPkg    = "typescript"
)

// ScanResult describes what was found at a project root.
type ScanResult struct {
	Language  Language
	Marker    string // marker file that decided the language
	Promoted  bool   // package.json project promoted to TypeScript
	Framework string // best-effort framework label, may be empty
}

// ScanProject inspects the immediate children of dir.
func ScanProject(dir string) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", dir)
	}
	return ScanFS(os.DirFS(dir))
}

// ScanFS is ScanProject over an arbitrary filesystem rooted at the project.
func ScanFS(fsys fs.FS) (*ScanResult, error) {
	res := &ScanResult{}
	found := false
	for _, li := range languages {
		if m, ok := firstMarker(fsys, li.markers); ok {
			res.Language, res.Marker = li.lang, m
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotDetected
	}

	if res.Language == JavaScript && declaresTypeScript(fsys) {
		res.Language = TypeScript
		res.Promoted = true
	}
	res.Framework = DetectFramework(fsys, res.Language)

	logging.Debug("scanned project", "language", res.Language, "marker", res.Marker,
		"promoted", res.Promoted, "framework", res.Framework)
	return res, nil
}

// Detect returns the language of the project rooted at dir.
func Detect(dir string) (Language, error) {
	res, err := ScanProject(dir)
	if err != nil {
		return 0, err
	}
	return res.Language, nil
}

// DetectFS returns the language of the project rooted at fsys.
func DetectFS(fsys fs.FS) (Language, error) {
	res, err := ScanFS(fsys)
	if err != nil {
		return 0, err
	}
	return res.Language, nil
}

func firstMarker(fsys fs.FS, markers []string) (string, bool) {
	for _, m := range markers {
		if _, err := fs.Stat(fsys, m); err == nil {
			return m, true
		}
	}
	return "", false
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func readPackageJSON(fsys fs.FS) (*packageJSON, bool) {
	data, err := fs.ReadFile(fsys, packageManifest)
	if err != nil {
		return nil, false
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		logging.Debug("unreadable package.json", "error", err)
		return nil, false
	}
	return &pkg, true
}

// declaresTypeScript reports whether a package.json project uses the
// TypeScript compiler, either through its config file or a dependency.
func declaresTypeScript(fsys fs.FS) bool {
	if _, err := fs.Stat(fsys, typeCheckerConfig); err == nil {
		return true
	}
	pkg, ok := readPackageJSON(fsys)
	if !ok {
		return false
	}
	_, dep := pkg.Dependencies[typeCheckerPkg]
	_, dev := pkg.DevDependencies[typeCheckerPkg]
	return dep || dev
}
