// Package images is the injected image-loading capability the renderer
// calls for img components. Loading is best-effort: every failure is an
// ordinary error the caller downgrades to a placeholder.
package images

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Loader resolves image sources to decoded images.
type Loader interface {
	Load(src string) (image.Image, error)
}

// DirLoader loads images from the filesystem, resolving relative sources
// against a base directory and refusing paths that escape it. Decoded
// images are cached per loader.
type DirLoader struct {
	base  string
	mu    sync.RWMutex
	cache map[string]image.Image
}

// NewDirLoader creates a loader rooted at base. An empty base means no
// resolution capability: relative sources fail to load.
func NewDirLoader(base string) *DirLoader {
	return &DirLoader{base: base, cache: make(map[string]image.Image)}
}

func (l *DirLoader) Load(src string) (image.Image, error) {
	path, err := l.resolve(src)
	if err != nil {
		return nil, err
	}

	l.mu.RLock()
	if img, ok := l.cache[path]; ok {
		l.mu.RUnlock()
		return img, nil
	}
	l.mu.RUnlock()

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}

	l.mu.Lock()
	l.cache[path] = img
	l.mu.Unlock()
	return img, nil
}

// resolve maps a source string to an absolute path inside the base
// directory. Absolute sources pass through as-is.
func (l *DirLoader) resolve(src string) (string, error) {
	if filepath.IsAbs(src) {
		return src, nil
	}
	if l.base == "" {
		return "", fmt.Errorf("relative path %q with no base directory", src)
	}
	path := filepath.Join(l.base, src)
	rel, err := filepath.Rel(l.base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the base directory", src)
	}
	return path, nil
}
