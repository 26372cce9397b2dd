// Package assets fetches model bundles and locates node models on disk.
package assets

import (
	"errors"
	"os"
	"path/filepath"
)

// ModelExts are tried in order for each node.
var ModelExts = []string{".glb", ".gltf", ".obj"}

// ErrNoModels is returned by Fetch when a bundle holds no model files.
var ErrNoModels = errors.New("bundle has no models")

// ModelPath returns the first existing <dir>/<node><ext>, or "" if there is none.
func ModelPath(dir, node string) string {
	for _, ext := range ModelExts {
		p := filepath.Join(dir, node+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Missing returns the nodes that have no model under dir, in the order given.
func Missing(dir string, nodes []string) []string {
	var out []string
	for _, n := range nodes {
		if ModelPath(dir, n) == "" {
			out = append(out, n)
		}
	}
	return out
}
