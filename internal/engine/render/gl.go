package render

import (
	"fmt"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lumenworks/lampviewer/internal/engine/camera"
	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
	"github.com/lumenworks/lampviewer/internal/engine/shader"
	"github.com/lumenworks/lampviewer/internal/logger"
)

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;

void main() {
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
`

const fragmentShaderSource = `
#version 410 core

in vec3 vNormal;
out vec4 FragColor;

uniform vec3 uColor;
uniform vec3 uSunDir;
uniform float uSunIntensity;
uniform float uAmbient;
uniform float uExposure;

void main() {
	vec3 n = normalize(vNormal);
	float diffuse = max(dot(n, normalize(uSunDir)), 0.0) * uSunIntensity;
	vec3 lit = uColor * (uAmbient * 0.4 + diffuse);
	FragColor = vec4(lit * uExposure, 1.0);
}
`

// GLRenderer draws mesh nodes as flat-shaded proxy volumes placed by their
// world transforms.
type GLRenderer struct {
	config Config
	log    *zap.Logger

	program uint32
	cubeVAO uint32
	cubeVBO uint32

	locModel        int32
	locView         int32
	locProj         int32
	locColor        int32
	locSunDir       int32
	locSunIntensity int32
	locAmbient      int32
	locExposure     int32

	mu       sync.Mutex
	exposure float32
}

// NewGL creates the OpenGL renderer. Must be called after the GL context
// exists, on the thread that owns it.
func NewGL(cfg Config) (*GLRenderer, error) {
	r := &GLRenderer{
		config:   cfg,
		log:      logger.Named("render"),
		exposure: 1.0,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	device := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("device", device))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program

	r.locModel = shader.GetUniform(program, "uModel")
	r.locView = shader.GetUniform(program, "uView")
	r.locProj = shader.GetUniform(program, "uProj")
	r.locColor = shader.GetUniform(program, "uColor")
	r.locSunDir = shader.GetUniform(program, "uSunDir")
	r.locSunIntensity = shader.GetUniform(program, "uSunIntensity")
	r.locAmbient = shader.GetUniform(program, "uAmbient")
	r.locExposure = shader.GetUniform(program, "uExposure")

	r.createCube()
	return r, nil
}

// Render clears the frame and draws every mesh node in the graph.
func (r *GLRenderer) Render(g *scenegraph.Graph, cam *camera.OrbitCamera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if g == nil || cam == nil {
		return
	}

	lights := collectLights(g)
	aspect := float32(r.config.Width) / float32(r.config.Height)
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(aspect)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.locProj, 1, false, &proj[0])
	gl.Uniform3f(r.locSunDir, lights.sunDir.X(), lights.sunDir.Y(), lights.sunDir.Z())
	gl.Uniform1f(r.locSunIntensity, lights.sunIntensity)
	gl.Uniform1f(r.locAmbient, lights.ambient)
	gl.Uniform1f(r.locExposure, r.Exposure())

	gl.BindVertexArray(r.cubeVAO)
	g.Traverse(func(n *scenegraph.Node) bool {
		if n.Kind != scenegraph.KindMesh {
			return true
		}

		model := n.WorldMatrix()
		gl.UniformMatrix4fv(r.locModel, 1, false, &model[0])

		color := mgl32.Vec3{0.6, 0.6, 0.6}
		if n.Material != nil {
			color = n.Material.BaseColor
		}
		gl.Uniform3f(r.locColor, color.X(), color.Y(), color.Z())

		gl.DrawArrays(gl.TRIANGLES, 0, 36)
		return true
	})
	gl.BindVertexArray(0)
}

// SetExposure updates the output exposure. Safe to call from any goroutine.
func (r *GLRenderer) SetExposure(e float32) {
	r.mu.Lock()
	r.exposure = e
	r.mu.Unlock()
}

// Exposure returns the current output exposure.
func (r *GLRenderer) Exposure() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exposure
}

// Resize handles window resize.
func (r *GLRenderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height))
}

// Dispose releases all GPU resources.
func (r *GLRenderer) Dispose() {
	r.log.Info("disposing renderer")
	if r.cubeVAO != 0 {
		gl.DeleteVertexArrays(1, &r.cubeVAO)
		r.cubeVAO = 0
	}
	if r.cubeVBO != 0 {
		gl.DeleteBuffers(1, &r.cubeVBO)
		r.cubeVBO = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// createCube uploads the shared unit-cube geometry: position (x, y, z) plus
// normal per vertex, 6 faces of 2 triangles.
func (r *GLRenderer) createCube() {
	vertices := cubeVertices()

	gl.GenVertexArrays(1, &r.cubeVAO)
	gl.BindVertexArray(r.cubeVAO)

	gl.GenBuffers(1, &r.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// cubeVertices builds the 36-vertex unit cube centered on the origin.
func cubeVertices() []float32 {
	type face struct {
		normal mgl32.Vec3
		quad   [4]mgl32.Vec3
	}

	h := float32(0.5)
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}

	verts := make([]float32, 0, 36*6)
	push := func(p, n mgl32.Vec3) {
		verts = append(verts, p.X(), p.Y(), p.Z(), n.X(), n.Y(), n.Z())
	}
	for _, f := range faces {
		push(f.quad[0], f.normal)
		push(f.quad[1], f.normal)
		push(f.quad[2], f.normal)
		push(f.quad[0], f.normal)
		push(f.quad[2], f.normal)
		push(f.quad[3], f.normal)
	}
	return verts
}
