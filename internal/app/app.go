// Package app wires the window, input, renderer and scene lifecycle into the
// configurator's main loop.
package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lumenworks/lampviewer/internal/config"
	"github.com/lumenworks/lampviewer/internal/engine/animation"
	"github.com/lumenworks/lampviewer/internal/engine/assets"
	"github.com/lumenworks/lampviewer/internal/engine/input"
	"github.com/lumenworks/lampviewer/internal/engine/render"
	"github.com/lumenworks/lampviewer/internal/engine/window"
	"github.com/lumenworks/lampviewer/internal/logger"
	"github.com/lumenworks/lampviewer/internal/viewer"
	"github.com/veandco/go-sdl2/sdl"
)

// App is the running configurator application.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window *window.Window
	input  *input.Input
	viewer *viewer.Viewer
	toggle *viewer.Toggle

	// current simulated time of day
	elevation float64
	azimuth   float64
}

// New creates the application: window first (it owns the GL context), then
// the scene lifecycle around it.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")

	a := &App{
		cfg:       cfg,
		log:       log,
		elevation: cfg.Lighting.ElevationDeg,
		azimuth:   cfg.Lighting.AzimuthDeg,
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:  "Lamp Configurator",
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.input = input.New()

	loader := assets.NewLoader(logger.Named("assets"))
	a.viewer = viewer.New(viewer.Config{
		BackdropPath: cfg.Assets.BackdropPath,
		ProductPath:  cfg.Assets.ProductPath,
		ShadeNode:    cfg.Assets.ShadeNode,
		FPSLimit:     cfg.Graphics.FPSLimit,
		Speed:        cfg.Animation.Speed,
		ElevationDeg: cfg.Lighting.ElevationDeg,
		AzimuthDeg:   cfg.Lighting.AzimuthDeg,
	}, loader, a.newRenderer, logger.Named("viewer"))
	a.toggle = viewer.NewToggle(a.viewer, log)

	log.Info("application initialized")
	return a, nil
}

// newRenderer builds the GL render context for one activation and hands the
// GL context over to the render loop's thread.
func (a *App) newRenderer() (render.Renderer, error) {
	w, h := a.window.GetSize()
	gl, err := render.NewGL(render.Config{Width: w, Height: h})
	if err != nil {
		return nil, err
	}
	// Created on this thread; the loop thread adopts the context on its
	// first frame.
	a.window.ReleaseContext()
	return &surfaceRenderer{gl: gl, window: a.window}, nil
}

// Run drives the main loop: input on this thread, rendering on the viewer's
// loop goroutine.
func (a *App) Run() error {
	a.running = true
	a.log.Info("starting main loop")

	for a.running {
		if a.input.Update() {
			break
		}
		for _, e := range a.input.Events() {
			a.handleEvent(e)
		}
		// Event cadence only; frames are produced by the render loop.
		time.Sleep(5 * time.Millisecond)
	}

	a.toggle.SetView(context.Background(), viewer.ViewImage)
	return nil
}

// Close tears the application down.
func (a *App) Close() {
	a.log.Info("closing application")
	a.viewer.Deactivate()
	a.window.Close()
}

func (a *App) handleEvent(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		a.running = false

	case input.EventWindowResize:
		if scene := a.viewer.Scene(); scene != nil {
			scene.Renderer.Resize(e.Width, e.Height)
		}

	case input.EventKeyDown:
		a.handleKey(e.Key)

	case input.EventMouseDown:
		if scene := a.viewer.Scene(); scene != nil && e.Button == sdl.BUTTON_LEFT {
			scene.Controls.BeginDrag(float32(e.MouseX), float32(e.MouseY))
		}

	case input.EventMouseMove:
		if scene := a.viewer.Scene(); scene != nil {
			scene.Controls.Drag(float32(e.MouseX), float32(e.MouseY))
		}

	case input.EventMouseUp:
		if scene := a.viewer.Scene(); scene != nil && e.Button == sdl.BUTTON_LEFT {
			scene.Controls.EndDrag()
		}

	case input.EventMouseWheel:
		if scene := a.viewer.Scene(); scene != nil {
			scene.Controls.Scroll(e.WheelY)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_V:
		mode := viewer.View3D
		if a.toggle.Mode() == viewer.View3D {
			mode = viewer.ViewImage
		}
		if err := a.toggle.SetView(context.Background(), mode); err != nil {
			a.log.Error("view switch failed", zap.Error(err))
		}

	case sdl.SCANCODE_1, sdl.SCANCODE_2, sdl.SCANCODE_3, sdl.SCANCODE_4:
		presets := []string{"brass", "matte-black", "linen", "smoked-glass"}
		name := presets[key-sdl.SCANCODE_1]
		if err := a.viewer.SetMaterialPreset(name); err != nil {
			a.log.Warn("preset swap failed", zap.Error(err))
		}

	case sdl.SCANCODE_O:
		last := int(math.Round(a.viewer.Controller().Duration() * animation.FrameRate))
		a.viewer.PlayToFrame(last, nil)

	case sdl.SCANCODE_C:
		a.viewer.PlayToFrame(0, nil)

	case sdl.SCANCODE_SPACE:
		a.viewer.StopAnimation()

	case sdl.SCANCODE_UP:
		a.setTimeOfDay(a.elevation+15, a.azimuth)
	case sdl.SCANCODE_DOWN:
		a.setTimeOfDay(a.elevation-15, a.azimuth)
	case sdl.SCANCODE_LEFT:
		a.setTimeOfDay(a.elevation, a.azimuth-15)
	case sdl.SCANCODE_RIGHT:
		a.setTimeOfDay(a.elevation, a.azimuth+15)

	case sdl.SCANCODE_EQUALS:
		a.viewer.SetAnimationSpeed(a.viewer.Controller().Speed() * 2)
	case sdl.SCANCODE_MINUS:
		a.viewer.SetAnimationSpeed(a.viewer.Controller().Speed() / 2)
	}
}

func (a *App) setTimeOfDay(elevation, azimuth float64) {
	if elevation > 90 {
		elevation = 90
	}
	if elevation < -90 {
		elevation = -90
	}
	a.elevation = elevation
	a.azimuth = azimuth
	a.viewer.SetTimeOfDay(elevation, azimuth)
}
