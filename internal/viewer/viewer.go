// Package viewer owns the 3D scene lifecycle: activation with concurrent
// asset loads, environment setup, the render loop, and full teardown back to
// an idle state.
package viewer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lumenworks/lampviewer/internal/engine/animation"
	"github.com/lumenworks/lampviewer/internal/engine/assets"
	"github.com/lumenworks/lampviewer/internal/engine/camera"
	"github.com/lumenworks/lampviewer/internal/engine/lighting"
	"github.com/lumenworks/lampviewer/internal/engine/materials"
	"github.com/lumenworks/lampviewer/internal/engine/render"
	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
)

// Phase is the lifecycle state of the viewer.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitializing
	PhaseActive
	PhaseDisposing
)

// String returns a readable phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInitializing:
		return "initializing"
	case PhaseActive:
		return "active"
	case PhaseDisposing:
		return "disposing"
	default:
		return "unknown"
	}
}

// ContextError reports a render context that could not be created. The
// activation attempt is over but a later Activate may succeed.
type ContextError struct {
	Err error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("render context unavailable: %v", e.Err)
}

func (e *ContextError) Unwrap() error { return e.Err }

// SceneContext bundles everything one activation owns. It is fully populated
// while the viewer is active and nil otherwise; no partially built context is
// ever visible.
type SceneContext struct {
	Renderer render.Renderer
	Camera   *camera.OrbitCamera
	Controls *camera.Controls
	Graph    *scenegraph.Graph
	Backdrop *scenegraph.Node
	Product  *scenegraph.Node
	Rig      *lighting.Rig
}

// Config carries the viewer's activation parameters.
type Config struct {
	BackdropPath string
	ProductPath  string
	ShadeNode    string  // name of the shade mesh node in the product model
	FPSLimit     int     // render loop tick rate
	Speed        float64 // initial animation speed multiplier
	ElevationDeg float64 // time-of-day applied automatically on activation
	AzimuthDeg   float64
}

// RendererFactory creates the render context for one activation.
type RendererFactory func() (render.Renderer, error)

// AssetLoader is the loader capability the lifecycle needs.
type AssetLoader interface {
	LoadPair(ctx context.Context, backdropPath, productPath string) (*assets.Result, *assets.Result, error)
}

// Viewer is the scene lifecycle manager. All methods are safe for concurrent
// use.
type Viewer struct {
	log         *zap.Logger
	cfg         Config
	loader      AssetLoader
	newRenderer RendererFactory
	controller  *animation.Controller

	mu         sync.Mutex
	phase      Phase
	generation uint64 // bumped on every activation and deactivation
	scene      *SceneContext
	loading    bool
	cancelLoop context.CancelFunc
	loopDone   chan struct{}

	rendering atomic.Bool
}

// New creates an idle viewer.
func New(cfg Config, loader AssetLoader, newRenderer RendererFactory, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.FPSLimit <= 0 {
		cfg.FPSLimit = animation.FrameRate
	}

	v := &Viewer{
		log:         log,
		cfg:         cfg,
		loader:      loader,
		newRenderer: newRenderer,
		controller:  animation.NewController(log.Named("animation")),
	}
	if cfg.Speed > 0 {
		v.controller.SetSpeed(cfg.Speed)
	}
	return v
}

// Activate builds the 3D scene: render context first, then both assets
// concurrently, then environment setup, then the render loop. Any failure
// tears the attempt down to a clean idle state. No-op while already active
// or activating.
func (v *Viewer) Activate(ctx context.Context) error {
	v.mu.Lock()
	if v.phase != PhaseIdle {
		v.log.Debug("activate ignored", zap.String("phase", v.phase.String()))
		v.mu.Unlock()
		return nil
	}
	v.phase = PhaseInitializing
	v.loading = true
	v.generation++
	gen := v.generation
	v.mu.Unlock()

	v.log.Info("activating 3D view")

	renderer, err := v.newRenderer()
	if err != nil {
		v.abandonActivation(gen)
		return &ContextError{Err: err}
	}

	backdrop, product, err := v.loader.LoadPair(ctx, v.cfg.BackdropPath, v.cfg.ProductPath)
	if err != nil {
		renderer.Dispose()
		v.abandonActivation(gen)
		return fmt.Errorf("activate: %w", err)
	}

	v.mu.Lock()
	// A deactivation during the load invalidates this attempt; the late
	// results are discarded, never applied.
	if v.generation != gen {
		v.mu.Unlock()
		renderer.Dispose()
		v.log.Debug("stale activation discarded")
		return nil
	}

	scene := v.assemble(renderer, backdrop, product)
	v.scene = scene
	v.controller.Initialize(product.Clips)
	v.loading = false
	v.phase = PhaseActive

	loopCtx, cancel := context.WithCancel(context.Background())
	v.cancelLoop = cancel
	v.loopDone = make(chan struct{})
	go v.run(loopCtx, scene, v.loopDone)
	v.mu.Unlock()

	// One automatic time-of-day pass with the configured defaults.
	v.SetTimeOfDay(v.cfg.ElevationDeg, v.cfg.AzimuthDeg)

	v.log.Info("3D view active",
		zap.Int("clips", len(product.Clips)),
		zap.Int("fps", v.cfg.FPSLimit))
	return nil
}

// assemble builds the scene context from the two load results. Caller holds
// the lock.
func (v *Viewer) assemble(renderer render.Renderer, backdrop, product *assets.Result) *SceneContext {
	graph := scenegraph.New()

	backdropGroup := scenegraph.NewNode("Backdrop", scenegraph.KindGroup)
	adoptChildren(backdropGroup, backdrop.Graph)
	graph.Attach(backdropGroup)

	productGroup := scenegraph.NewNode("Product", scenegraph.KindGroup)
	adoptChildren(productGroup, product.Graph)
	graph.Attach(productGroup)

	rig := lighting.NewRig(v.log.Named("lighting"))
	rig.Configure(graph)
	rig.ConfigureSky(graph)
	graph.Attach(lighting.NewFillLight())

	cam := camera.NewOrbitCamera()
	return &SceneContext{
		Renderer: renderer,
		Camera:   cam,
		Controls: camera.NewControls(cam),
		Graph:    graph,
		Backdrop: backdropGroup,
		Product:  productGroup,
		Rig:      rig,
	}
}

// adoptChildren reparents a loaded graph's top-level nodes under dst.
func adoptChildren(dst *scenegraph.Node, src *scenegraph.Graph) {
	children := append([]*scenegraph.Node(nil), src.Root().Children()...)
	for _, c := range children {
		dst.AddChild(c)
	}
}

// abandonActivation resets the failed attempt to idle unless a concurrent
// deactivation already superseded it.
func (v *Viewer) abandonActivation(gen uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.generation != gen {
		return
	}
	v.phase = PhaseIdle
	v.loading = false
}

// Deactivate stops the render loop, disposes the render context and drops all
// scene state. Safe to call in any phase, including repeatedly.
func (v *Viewer) Deactivate() {
	v.mu.Lock()
	if v.phase == PhaseIdle || v.phase == PhaseDisposing {
		v.mu.Unlock()
		return
	}
	v.generation++

	if v.phase == PhaseInitializing {
		// The in-flight activation notices the generation bump and
		// discards its results.
		v.phase = PhaseIdle
		v.loading = false
		v.mu.Unlock()
		v.log.Info("activation abandoned")
		return
	}

	v.phase = PhaseDisposing
	cancel := v.cancelLoop
	done := v.loopDone
	scene := v.scene
	v.cancelLoop = nil
	v.loopDone = nil
	v.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	scene.Renderer.Dispose()
	v.controller.Reset()

	v.mu.Lock()
	v.scene = nil
	v.loading = false
	v.phase = PhaseIdle
	v.mu.Unlock()

	v.log.Info("viewer deactivated")
}

// SetTimeOfDay repositions the sun and rescales the light rig. No-op unless
// active.
func (v *Viewer) SetTimeOfDay(elevationDeg, azimuthDeg float64) {
	v.mu.Lock()
	scene := v.activeScene()
	v.mu.Unlock()
	if scene == nil {
		return
	}
	scene.Rig.SetTimeOfDay(elevationDeg, azimuthDeg, scene.Renderer)
}

// SetMaterialPreset swaps the shade material. Unknown presets return
// materials.UnknownPresetError; a missing shade node is a silent skip.
func (v *Viewer) SetMaterialPreset(name string) error {
	v.mu.Lock()
	scene := v.activeScene()
	v.mu.Unlock()
	if scene == nil {
		return nil
	}
	return materials.Apply(scene.Graph, v.cfg.ShadeNode, name, v.log)
}

// PlayToFrame seeks the hinge animation to the target frame. The callback
// receives started/playing/completed events.
func (v *Viewer) PlayToFrame(target int, fn animation.FrameFunc) {
	v.controller.PlayToFrame(target, fn)
}

// StopAnimation pauses the animation at the current frame.
func (v *Viewer) StopAnimation() {
	v.controller.Stop()
}

// SetAnimationSpeed changes the playback speed multiplier.
func (v *Viewer) SetAnimationSpeed(speed float64) {
	v.controller.SetSpeed(speed)
}

// activeScene returns the scene context while active. Caller holds the lock.
func (v *Viewer) activeScene() *SceneContext {
	if v.phase != PhaseActive {
		return nil
	}
	return v.scene
}

// Phase returns the current lifecycle phase.
func (v *Viewer) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Scene returns the current scene context, or nil when not active.
func (v *Viewer) Scene() *SceneContext {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.activeScene()
}

// Loading reports whether asset loads are in flight.
func (v *Viewer) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// IsRendering reports whether the render loop goroutine is running.
func (v *Viewer) IsRendering() bool {
	return v.rendering.Load()
}

// Controller exposes the animation controller for read access.
func (v *Viewer) Controller() *animation.Controller {
	return v.controller
}
