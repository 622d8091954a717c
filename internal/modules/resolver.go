// Package modules implements the module resolver spec §6 names: given a
// module name, find the file backing it by searching a configured list
// of directories and recognized file extensions. Grounded on
// funvibe-funxy/internal/modules/loader.go's own directory+extension
// search, stripped of that loader's virtual-package, package-group and
// dependency-graph caching machinery — those concern a fuller module
// system than this core specifies (see DESIGN.md); the program loader in
// pkg/heron does its own cycle detection against the narrower Resolver
// contract below.
package modules

import (
	"os"
	"path/filepath"
)

// Resolver locates a module's source file by name.
type Resolver interface {
	Resolve(name string) (path string, ok bool)
}

// DirResolver is the concrete Resolver backing config.Configuration's
// InputPaths/Extensions fields (spec §6): it searches each input path in
// order, trying each recognized extension, and returns the first match.
type DirResolver struct {
	Paths      []string
	Extensions []string
}

// NewDirResolver returns a DirResolver searching paths in order for a
// file named <module>.<ext> for each ext in extensions.
func NewDirResolver(paths, extensions []string) *DirResolver {
	return &DirResolver{Paths: paths, Extensions: extensions}
}

func (r *DirResolver) Resolve(name string) (string, bool) {
	for _, dir := range r.Paths {
		for _, ext := range r.Extensions {
			candidate := filepath.Join(dir, name+ext)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}
	return "", false
}
