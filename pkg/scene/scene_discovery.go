package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ErrUnknownScene is returned for names that are not built in
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to New
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type builtin struct {
	info  SceneInfo
	build func(random core.Random) *Scene
}

var builtins = map[string]builtin{
	"quick": {
		info: SceneInfo{ID: "quick", DisplayName: "Quick", Description: "One diffuse sphere on the ground, single sample"},
		build: func(core.Random) *Scene {
			return NewQuickScene()
		},
	},
	"materials": {
		info: SceneInfo{ID: "materials", DisplayName: "Materials", Description: "Diffuse, hollow glass and fuzzy gold spheres"},
		build: func(core.Random) *Scene {
			return NewMaterialsScene()
		},
	},
	"playaround": {
		info: SceneInfo{ID: "playaround", DisplayName: "Playaround", Description: "Glass bubble holding three spheres on a half-sphere ground"},
		build: func(core.Random) *Scene {
			return NewPlayaroundScene()
		},
	},
	"spheregrid": {
		info:  SceneInfo{ID: "spheregrid", DisplayName: "Sphere Grid", Description: "Grid of small spheres with random materials"},
		build: NewSphereGridScene,
	},
}

// New builds the named scene. random is only consumed by scenes with a random layout.
func New(name string, random core.Random) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return b.build(random), nil
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Names returns the IDs of every built-in scene, sorted
func Names() []string {
	scenes := ListScenes()
	names := make([]string, len(scenes))
	for i, s := range scenes {
		names[i] = s.ID
	}
	return names
}
