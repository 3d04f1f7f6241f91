package scene

import (
	"sort"
	"strings"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrUnknownScene is returned for names missing from the registry
var ErrUnknownScene = errors.New("unknown scene")

// Builder constructs a scene, applying the first camera override if given
type Builder func(cameraOverrides ...renderer.CameraConfig) (*Scene, error)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Registry name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type registration struct {
	builder     Builder
	description string
}

var registry = map[string]registration{
	"default":     {NewDefaultScene, "Diffuse, gold and hollow glass spheres showing refraction"},
	"materials":   {NewMaterialsScene, "Fuzzy metal, diffuse and glass spheres seen head-on"},
	"defocus":     {NewDefocusScene, "Refraction spheres through a wide-aperture lens"},
	"random":      {NewRandomScene, "Hundreds of small random spheres around three large ones"},
	"sphere-grid": {NewSphereGridScene, "Grid of rainbow-colored metallic spheres"},
	"debug":       {NewDebugScene, "Surfaces colored by normal direction"},
}

// ListScenes returns every built-in scene, sorted by ID
func ListScenes() []SceneInfo {
	names := lo.Keys(registry)
	sort.Strings(names)

	return lo.Map(names, func(name string, _ int) SceneInfo {
		return SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: registry[name].description,
		}
	})
}

// Create builds the named scene
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q (available: %s)", name,
			strings.Join(lo.Map(ListScenes(), func(info SceneInfo, _ int) string { return info.ID }), ", "))
	}

	s, err := entry.builder(cameraOverrides...)
	if err != nil {
		return nil, errors.Wrapf(err, "building scene %q", name)
	}
	return s, nil
}

// titleCase converts a registry name to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
