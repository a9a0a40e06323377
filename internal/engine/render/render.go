// Package render defines the renderer contract the viewer drives and its
// OpenGL implementation.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lumenworks/lampviewer/internal/engine/camera"
	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws a scene graph from a camera and owns the GPU resources
// backing it.
type Renderer interface {
	Render(g *scenegraph.Graph, cam *camera.OrbitCamera)
	SetExposure(e float32)
	Exposure() float32
	Resize(width, height int)
	Dispose()
}

// sceneLights is the light state gathered from one graph traversal.
type sceneLights struct {
	ambient      float32
	sunDir       mgl32.Vec3
	sunIntensity float32
}

// collectLights walks the graph and folds every light node into the uniform
// set the shader consumes. Point and spot lamp sources contribute to the
// ambient term; the sky and any directional fill average into the sun.
func collectLights(g *scenegraph.Graph) sceneLights {
	lights := sceneLights{sunDir: mgl32.Vec3{0, 1, 0}}

	g.Traverse(func(n *scenegraph.Node) bool {
		switch n.Kind {
		case scenegraph.KindAmbientLight, scenegraph.KindHemisphereLight:
			lights.ambient += n.Intensity
		case scenegraph.KindPointLight, scenegraph.KindSpotLight:
			lights.ambient += n.Intensity * 0.5
		case scenegraph.KindSky, scenegraph.KindDirectionalLight:
			lights.sunIntensity += n.Intensity
			if n.Direction.Len() > 0 {
				lights.sunDir = n.Direction.Normalize()
			}
		}
		return true
	})

	return lights
}
