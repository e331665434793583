package scene

import (
	"fmt"
	"sort"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type builtin struct {
	info  SceneInfo
	build func() *Scene
}

var builtins = map[string]builtin{
	"mirrors": {
		SceneInfo{"mirrors", "Two Spheres on Mirrors", "Nested spheres between two facing mirrors lit by a spot light"},
		NewMirrorsScene,
	},
	"glossy": {
		SceneInfo{"glossy", "Glossy and Blurry", "Spheres over a glossy floor behind a blurry glass pane"},
		NewGlossyScene,
	},
	"shapes": {
		SceneInfo{"shapes", "Shape Gallery", "Every primitive with soft shadows from point and spot lights"},
		NewShapesScene,
	},
}

// ListBuiltinScenes returns the built-in scenes sorted by id
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		infos = append(infos, b.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// NewBuiltinScene creates the built-in scene with the given id
func NewBuiltinScene(id string) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return b.build(), nil
}
