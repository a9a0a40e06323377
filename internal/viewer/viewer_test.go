package viewer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lumenworks/lampviewer/internal/engine/animation"
	"github.com/lumenworks/lampviewer/internal/engine/assets"
	"github.com/lumenworks/lampviewer/internal/engine/camera"
	"github.com/lumenworks/lampviewer/internal/engine/render"
	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
)

type fakeRenderer struct {
	mu        sync.Mutex
	exposure  float32
	exposures []float32
	renders   int
	disposed  bool
}

func (r *fakeRenderer) Render(g *scenegraph.Graph, cam *camera.OrbitCamera) {
	r.mu.Lock()
	r.renders++
	r.mu.Unlock()
}

func (r *fakeRenderer) SetExposure(e float32) {
	r.mu.Lock()
	r.exposure = e
	r.exposures = append(r.exposures, e)
	r.mu.Unlock()
}

func (r *fakeRenderer) Exposure() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exposure
}

func (r *fakeRenderer) Resize(w, h int) {}

func (r *fakeRenderer) Dispose() {
	r.mu.Lock()
	r.disposed = true
	r.mu.Unlock()
}

func (r *fakeRenderer) exposureCalls() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float32(nil), r.exposures...)
}

func (r *fakeRenderer) isDisposed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposed
}

// fakeLoader returns canned lamp scenes. A non-nil gate blocks LoadPair until
// the gate closes; started is closed when LoadPair is entered.
type fakeLoader struct {
	err     error
	gate    chan struct{}
	started chan struct{}

	mu    sync.Mutex
	calls int
}

func lampResult() *assets.Result {
	g := scenegraph.New()
	body := scenegraph.NewNode("Lamp_Body", scenegraph.KindGroup)
	body.AddChild(scenegraph.NewNode("Shade", scenegraph.KindMesh))
	body.AddChild(scenegraph.NewNode("Point", scenegraph.KindGroup))
	g.Attach(body)
	return &assets.Result{
		Graph: g,
		Clips: []animation.Clip{{Name: "Open", Duration: 2.0}},
	}
}

func (l *fakeLoader) LoadPair(ctx context.Context, backdropPath, productPath string) (*assets.Result, *assets.Result, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()

	if l.started != nil {
		close(l.started)
		l.started = nil
	}
	if l.gate != nil {
		<-l.gate
	}
	if l.err != nil {
		return nil, nil, l.err
	}
	return lampResult(), lampResult(), nil
}

type harness struct {
	viewer    *Viewer
	loader    *fakeLoader
	renderers []*fakeRenderer
	factories int
	facErr    error
}

func newHarness(loader *fakeLoader) *harness {
	h := &harness{loader: loader}
	cfg := Config{
		BackdropPath: "backdrop.glb",
		ProductPath:  "lamp.glb",
		ShadeNode:    "Shade",
		FPSLimit:     240,
		ElevationDeg: 90,
		AzimuthDeg:   90,
	}
	h.viewer = New(cfg, loader, func() (render.Renderer, error) {
		h.factories++
		if h.facErr != nil {
			return nil, h.facErr
		}
		r := &fakeRenderer{}
		h.renderers = append(h.renderers, r)
		return r, nil
	}, nil)
	return h
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestActivateSuccess(t *testing.T) {
	h := newHarness(&fakeLoader{})

	if err := h.viewer.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer h.viewer.Deactivate()

	if h.viewer.Phase() != PhaseActive {
		t.Fatalf("expected active phase, got %s", h.viewer.Phase())
	}
	if h.viewer.Loading() {
		t.Error("expected loading cleared after activation")
	}

	scene := h.viewer.Scene()
	if scene == nil {
		t.Fatal("expected scene context")
	}
	for _, name := range []string{"Backdrop", "Product", "Ambient", "Hemisphere", "Sky", "Fill", "Shade"} {
		if scene.Graph.FindByName(name) == nil {
			t.Errorf("expected %s node in assembled graph", name)
		}
	}

	if h.viewer.Controller().State() != animation.StateReady {
		t.Errorf("expected ready controller, got %s", h.viewer.Controller().State())
	}

	// Exactly one automatic time-of-day pass; zenith defaults give full
	// exposure.
	calls := h.renderers[0].exposureCalls()
	if len(calls) != 1 || calls[0] != 1.0 {
		t.Errorf("expected one exposure update to 1.0, got %v", calls)
	}

	waitFor(t, "render loop", h.viewer.IsRendering)
	waitFor(t, "first frame", func() bool {
		h.renderers[0].mu.Lock()
		defer h.renderers[0].mu.Unlock()
		return h.renderers[0].renders > 0
	})
}

func TestActivateRendererFailure(t *testing.T) {
	h := newHarness(&fakeLoader{})
	h.facErr = errors.New("no GL context")

	err := h.viewer.Activate(context.Background())
	var ctxErr *ContextError
	if !errors.As(err, &ctxErr) {
		t.Fatalf("expected ContextError, got %v", err)
	}
	if h.viewer.Phase() != PhaseIdle {
		t.Errorf("expected idle after failure, got %s", h.viewer.Phase())
	}
	if h.viewer.Scene() != nil {
		t.Error("expected no scene context after failure")
	}
	if h.viewer.Loading() {
		t.Error("expected loading cleared after failure")
	}
}

func TestActivateLoadFailure(t *testing.T) {
	h := newHarness(&fakeLoader{err: &assets.LoadError{Path: "lamp.glb", Err: errors.New("corrupt")}})

	err := h.viewer.Activate(context.Background())
	var loadErr *assets.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}

	if h.viewer.Phase() != PhaseIdle {
		t.Errorf("expected idle after load failure, got %s", h.viewer.Phase())
	}
	if h.viewer.Scene() != nil {
		t.Error("expected no partial scene context")
	}
	if len(h.renderers) != 1 || !h.renderers[0].isDisposed() {
		t.Error("expected the render context disposed on load failure")
	}
}

func TestActivateWhileActiveIsNoOp(t *testing.T) {
	h := newHarness(&fakeLoader{})

	if err := h.viewer.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer h.viewer.Deactivate()

	if err := h.viewer.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}
	if h.factories != 1 {
		t.Errorf("expected a single render context, got %d", h.factories)
	}
}

func TestDeactivateStopsEverything(t *testing.T) {
	h := newHarness(&fakeLoader{})

	if err := h.viewer.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	waitFor(t, "render loop", h.viewer.IsRendering)

	h.viewer.Deactivate()

	if h.viewer.IsRendering() {
		t.Error("expected render loop stopped")
	}
	if h.viewer.Phase() != PhaseIdle {
		t.Errorf("expected idle, got %s", h.viewer.Phase())
	}
	if h.viewer.Scene() != nil {
		t.Error("expected scene context dropped")
	}
	if !h.renderers[0].isDisposed() {
		t.Error("expected render context disposed")
	}
	if h.viewer.Controller().State() != animation.StateIdle {
		t.Errorf("expected controller reset, got %s", h.viewer.Controller().State())
	}

	// Repeat must be harmless.
	h.viewer.Deactivate()
}

func TestDeactivateWhenIdleIsSafe(t *testing.T) {
	h := newHarness(&fakeLoader{})
	h.viewer.Deactivate()
	h.viewer.Deactivate()
}

func TestLateLoadAfterDeactivateIsDiscarded(t *testing.T) {
	loader := &fakeLoader{
		gate:    make(chan struct{}),
		started: make(chan struct{}),
	}
	started := loader.started
	h := newHarness(loader)

	errc := make(chan error, 1)
	go func() { errc <- h.viewer.Activate(context.Background()) }()

	<-started
	h.viewer.Deactivate()
	close(loader.gate)

	if err := <-errc; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.viewer.Phase() != PhaseIdle {
		t.Errorf("expected idle, got %s", h.viewer.Phase())
	}
	if h.viewer.Scene() != nil {
		t.Error("expected the late load result discarded")
	}
	if len(h.renderers) != 1 || !h.renderers[0].isDisposed() {
		t.Error("expected the orphaned render context disposed")
	}
}

func TestDeactivateActivateRoundTrip(t *testing.T) {
	h := newHarness(&fakeLoader{})

	if err := h.viewer.Activate(context.Background()); err != nil {
		t.Fatalf("first activate: %v", err)
	}
	h.viewer.Deactivate()

	if err := h.viewer.Activate(context.Background()); err != nil {
		t.Fatalf("second activate: %v", err)
	}
	defer h.viewer.Deactivate()

	if h.viewer.Phase() != PhaseActive {
		t.Fatalf("expected active after round trip, got %s", h.viewer.Phase())
	}
	if h.factories != 2 {
		t.Errorf("expected a fresh render context per activation, got %d", h.factories)
	}

	// The second activation repeats the first one's automatic setup exactly.
	calls := h.renderers[1].exposureCalls()
	if len(calls) != 1 || calls[0] != 1.0 {
		t.Errorf("expected one exposure update to 1.0, got %v", calls)
	}
	if h.viewer.Controller().State() != animation.StateReady {
		t.Errorf("expected ready controller, got %s", h.viewer.Controller().State())
	}
}

func TestMaterialPresetWhileActive(t *testing.T) {
	h := newHarness(&fakeLoader{})

	if err := h.viewer.Activate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer h.viewer.Deactivate()

	if err := h.viewer.SetMaterialPreset("brass"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	shade := h.viewer.Scene().Graph.FindByName("Shade")
	if shade.Material == nil {
		t.Fatal("expected preset applied to shade node")
	}
}

func TestMaterialPresetWhileIdle(t *testing.T) {
	h := newHarness(&fakeLoader{})

	if err := h.viewer.SetMaterialPreset("brass"); err != nil {
		t.Errorf("expected silent no-op while idle, got %v", err)
	}
}

func TestToggle(t *testing.T) {
	h := newHarness(&fakeLoader{})
	toggle := NewToggle(h.viewer, nil)

	if toggle.Mode() != ViewImage || !toggle.ImageVisible() || toggle.SurfaceVisible() {
		t.Fatal("expected initial image view")
	}

	if err := toggle.SetView(context.Background(), View3D); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toggle.Mode() != View3D || toggle.ImageVisible() || !toggle.SurfaceVisible() {
		t.Error("expected 3D view visible")
	}
	if h.viewer.Phase() != PhaseActive {
		t.Errorf("expected activation, got %s", h.viewer.Phase())
	}

	if err := toggle.SetView(context.Background(), ViewImage); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toggle.Mode() != ViewImage || !toggle.ImageVisible() || toggle.SurfaceVisible() {
		t.Error("expected image view restored")
	}
	if h.viewer.Phase() != PhaseIdle {
		t.Errorf("expected deactivation, got %s", h.viewer.Phase())
	}

	if err := toggle.SetView(context.Background(), "vr"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
