// Package templates holds the built-in scaffolds compiled into the binary.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed agents commands hooks memory ignore scaffold
var files embed.FS

// FS returns the read-only tree of built-in templates.
func FS() fs.FS {
	return files
}
