// Package theme holds the closed set of rendering presets a document can
// name. Both the parser (name validation) and the renderers (constants)
// read from it; nothing registers themes at runtime.
package theme

import (
	"fmt"
	"sort"
	"strings"
)

// Theme bundles the visual constants a renderer starts from.
type Theme struct {
	StrokeWidth  float64
	BorderRadius float64
	FontSize     float64
	DefaultBg    string
}

var presets = map[string]Theme{
	"default": {StrokeWidth: 2, BorderRadius: 6, FontSize: 16, DefaultBg: "#e8e8e8"},
	"sketch":  {StrokeWidth: 3, BorderRadius: 10, FontSize: 16, DefaultBg: "#f5f0e6"},
	"minimal": {StrokeWidth: 1, BorderRadius: 0, FontSize: 14, DefaultBg: "#f0f0f0"},
	"bold":    {StrokeWidth: 4, BorderRadius: 8, FontSize: 18, DefaultBg: "#dcdcdc"},
}

// Resolve maps an optional theme name to its preset. The empty name is the
// default bundle; an unknown non-empty name is an error listing the valid
// set.
func Resolve(name string) (Theme, error) {
	if name == "" {
		return presets["default"], nil
	}
	t, ok := presets[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Known reports whether name is a valid preset name.
func Known(name string) bool {
	_, ok := presets[name]
	return ok
}

// Names returns the valid theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
