package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/g3n/engine/loader/gltf"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lumenworks/lampviewer/internal/engine/animation"
	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
)

// glTF component type of animation keyframe inputs (32-bit float).
const componentFloat = 5126

func parseDocument(path string) (*gltf.GLTF, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb":
		return gltf.ParseBin(path)
	case ".gltf":
		return gltf.ParseJSON(path)
	default:
		return nil, fmt.Errorf("unsupported asset format %q", filepath.Ext(path))
	}
}

// buildGraph converts the document's first scene into a scene graph.
func buildGraph(doc *gltf.GLTF) (*scenegraph.Graph, error) {
	if len(doc.Scenes) == 0 {
		return nil, fmt.Errorf("document has no scenes")
	}

	g := scenegraph.New()
	for _, ni := range doc.Scenes[0].Nodes {
		g.Attach(buildNode(doc, int(ni)))
	}
	return g, nil
}

func buildNode(doc *gltf.GLTF, idx int) *scenegraph.Node {
	src := &doc.Nodes[idx]

	kind := scenegraph.KindGroup
	if src.Mesh != nil {
		kind = scenegraph.KindMesh
	}
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("node-%d", idx)
	}

	n := scenegraph.NewNode(name, kind)
	if len(src.Translation) == 3 {
		n.Translation = mgl32.Vec3{
			float32(src.Translation[0]),
			float32(src.Translation[1]),
			float32(src.Translation[2]),
		}
	}
	if len(src.Rotation) == 4 {
		// glTF stores quaternions as (x, y, z, w).
		n.Rotation = mgl32.Quat{
			W: float32(src.Rotation[3]),
			V: mgl32.Vec3{
				float32(src.Rotation[0]),
				float32(src.Rotation[1]),
				float32(src.Rotation[2]),
			},
		}
	}
	if len(src.Scale) == 3 {
		n.Scale = mgl32.Vec3{
			float32(src.Scale[0]),
			float32(src.Scale[1]),
			float32(src.Scale[2]),
		}
	}

	for _, ci := range src.Children {
		n.AddChild(buildNode(doc, int(ci)))
	}
	return n
}

// clipTimeline returns the longest keyframe input time in the document.
// Keyframe inputs are the only float scalar accessors product exports carry,
// and all clips in one file share the authoring timeline.
func clipTimeline(doc *gltf.GLTF) float64 {
	var longest float64
	for i := range doc.Accessors {
		acc := &doc.Accessors[i]
		if acc.Type != "SCALAR" || acc.ComponentType != componentFloat {
			continue
		}
		if len(acc.Max) == 0 {
			continue
		}
		if t := float64(acc.Max[0]); t > longest {
			longest = t
		}
	}
	return longest
}

func buildClips(doc *gltf.GLTF) []animation.Clip {
	if len(doc.Animations) == 0 {
		return nil
	}

	duration := clipTimeline(doc)
	clips := make([]animation.Clip, 0, len(doc.Animations))
	for i := range doc.Animations {
		name := doc.Animations[i].Name
		if name == "" {
			name = fmt.Sprintf("clip-%d", i)
		}
		clips = append(clips, animation.Clip{Name: name, Duration: duration})
	}
	return clips
}
