package app

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/lumenworks/lampviewer/internal/engine/camera"
	"github.com/lumenworks/lampviewer/internal/engine/render"
	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
	"github.com/lumenworks/lampviewer/internal/engine/window"
	"github.com/lumenworks/lampviewer/internal/logger"
)

// surfaceRenderer owns the window/GL-context handoff around the GL renderer.
// Render runs on the viewer's loop goroutine: the first frame pins that
// goroutine to its OS thread and adopts the GL context; Dispose reclaims the
// context on the disposing thread and leaves a cleared placeholder frame.
type surfaceRenderer struct {
	gl     *render.GLRenderer
	window *window.Window
	log    *zap.Logger

	bound bool

	mu            sync.Mutex
	width, height int // pending resize, applied on the render thread
	resize        bool
}

func (s *surfaceRenderer) Render(g *scenegraph.Graph, cam *camera.OrbitCamera) {
	if !s.bound {
		runtime.LockOSThread()
		if err := s.window.MakeCurrent(); err != nil {
			s.logger().Error("failed to adopt GL context", zap.Error(err))
			return
		}
		s.bound = true
	}
	s.mu.Lock()
	if s.resize {
		s.gl.Resize(s.width, s.height)
		s.resize = false
	}
	s.mu.Unlock()

	s.gl.Render(g, cam)
	s.window.SwapBuffers()
}

func (s *surfaceRenderer) SetExposure(e float32) { s.gl.SetExposure(e) }

func (s *surfaceRenderer) Exposure() float32 { return s.gl.Exposure() }

// Resize records the new surface size; the GL viewport update happens on the
// render thread.
func (s *surfaceRenderer) Resize(width, height int) {
	s.mu.Lock()
	s.width = width
	s.height = height
	s.resize = true
	s.mu.Unlock()
}

// Dispose reclaims the GL context, clears the surface back to the placeholder
// and releases all GPU resources. The render loop has already stopped.
func (s *surfaceRenderer) Dispose() {
	if err := s.window.MakeCurrent(); err != nil {
		s.logger().Error("failed to reclaim GL context", zap.Error(err))
		return
	}
	s.gl.Render(nil, nil) // clear to the empty placeholder
	s.window.SwapBuffers()
	s.gl.Dispose()
}

func (s *surfaceRenderer) logger() *zap.Logger {
	if s.log == nil {
		s.log = logger.Named("surface")
	}
	return s.log
}
