package viewer

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ViewMode selects what the configurator shows.
type ViewMode string

const (
	ViewImage ViewMode = "image"
	View3D    ViewMode = "3d"
)

// Toggle switches between the static product image and the interactive 3D
// view, tracking which presentation surfaces are visible.
type Toggle struct {
	log    *zap.Logger
	viewer *Viewer

	mu             sync.Mutex
	mode           ViewMode
	imageVisible   bool
	surfaceVisible bool
}

// NewToggle creates a toggle showing the static image.
func NewToggle(v *Viewer, log *zap.Logger) *Toggle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Toggle{
		log:          log,
		viewer:       v,
		mode:         ViewImage,
		imageVisible: true,
	}
}

// SetView switches the presentation. "3d" hides the image, shows the render
// surface and activates the scene; "image" deactivates the scene and shows
// the image again.
func (t *Toggle) SetView(ctx context.Context, mode ViewMode) error {
	switch mode {
	case View3D:
		t.mu.Lock()
		t.mode = View3D
		t.imageVisible = false
		t.surfaceVisible = true
		t.mu.Unlock()
		t.log.Info("switching to 3D view")
		return t.viewer.Activate(ctx)

	case ViewImage:
		t.viewer.Deactivate()
		t.mu.Lock()
		t.mode = ViewImage
		t.imageVisible = true
		t.surfaceVisible = false
		t.mu.Unlock()
		t.log.Info("switching to image view")
		return nil

	default:
		return fmt.Errorf("unknown view mode %q", mode)
	}
}

// Mode returns the active view mode.
func (t *Toggle) Mode() ViewMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// ImageVisible reports whether the static image is shown.
func (t *Toggle) ImageVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.imageVisible
}

// SurfaceVisible reports whether the render surface is shown.
func (t *Toggle) SurfaceVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.surfaceVisible
}
