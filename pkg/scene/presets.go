package scene

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownScene = errors.New("scene: unknown preset")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type preset struct {
	info  SceneInfo
	build func() Description
}

var presets = map[string]preset{
	"spheres": {
		SceneInfo{"spheres", "Random Spheres", "Field of small diffuse, metal and glass spheres around three large ones"},
		func() Description { return NewRandomSpheresScene(42) },
	},
	"cornell": {
		SceneInfo{"cornell", "Cornell Box", "Closed room lit by an emissive ceiling panel, with two oblique boxes"},
		NewCornellScene,
	},
	"showcase": {
		SceneInfo{"showcase", "Showcase", "Every shape and texture type under a gradient sky"},
		NewShowcaseScene,
	},
	"spheregrid": {
		SceneInfo{"spheregrid", "Sphere Grid", "400 metal spheres, useful for comparing backends"},
		NewSphereGridScene,
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(presets))
	for _, p := range presets {
		infos = append(infos, p.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// LookupPreset builds the description of a built-in scene
func LookupPreset(id string) (Description, error) {
	p, ok := presets[id]
	if !ok {
		return Description{}, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return p.build(), nil
}
