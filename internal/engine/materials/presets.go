// Package materials holds the immutable shade material presets and applies
// them to the loaded product model.
package materials

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
)

// Preset is a named, immutable bundle of surface parameters for the shade.
type Preset struct {
	Name      string
	BaseColor mgl32.Vec3
	Roughness float32
	Metalness float32
	ColorMap  string // optional texture map file
	NormalMap string // optional texture map file
}

// UnknownPresetError reports a preset name with no table entry.
type UnknownPresetError struct {
	Name string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown material preset %q", e.Name)
}

// presets is the read-only lookup table. Never mutated after init.
var presets = map[string]Preset{
	"brass": {
		Name:      "brass",
		BaseColor: mgl32.Vec3{0.76, 0.60, 0.32},
		Roughness: 0.35,
		Metalness: 1.0,
		ColorMap:  "brass_albedo.png",
		NormalMap: "brushed_normal.png",
	},
	"matte-black": {
		Name:      "matte-black",
		BaseColor: mgl32.Vec3{0.05, 0.05, 0.06},
		Roughness: 0.9,
		Metalness: 0.1,
	},
	"linen": {
		Name:      "linen",
		BaseColor: mgl32.Vec3{0.87, 0.83, 0.74},
		Roughness: 1.0,
		Metalness: 0.0,
		ColorMap:  "linen_albedo.png",
		NormalMap: "linen_weave_normal.png",
	},
	"smoked-glass": {
		Name:      "smoked-glass",
		BaseColor: mgl32.Vec3{0.25, 0.25, 0.28},
		Roughness: 0.05,
		Metalness: 0.0,
	},
}

// Lookup returns the preset for the given name.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names returns all preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply overwrites the shade node's material with the named preset.
// An unknown preset returns UnknownPresetError and mutates nothing. A missing
// shade node is non-fatal: the swap silently degrades to a no-op.
func Apply(g *scenegraph.Graph, shadeNode, presetName string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	p, ok := presets[presetName]
	if !ok {
		return &UnknownPresetError{Name: presetName}
	}

	n := g.FindByName(shadeNode)
	if n == nil {
		log.Debug("shade node absent, preset not applied",
			zap.String("node", shadeNode), zap.String("preset", presetName))
		return nil
	}

	n.Material = &scenegraph.Material{
		BaseColor: p.BaseColor,
		Roughness: p.Roughness,
		Metalness: p.Metalness,
		ColorMap:  p.ColorMap,
		NormalMap: p.NormalMap,
	}

	log.Info("material preset applied",
		zap.String("node", shadeNode), zap.String("preset", presetName))
	return nil
}
