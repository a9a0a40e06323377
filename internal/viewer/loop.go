package viewer

import (
	"context"
	"time"
)

// run is the per-activation render loop. It advances the animation by the
// wall-clock delta and renders once per tick until its context is cancelled.
func (v *Viewer) run(ctx context.Context, scene *SceneContext, done chan struct{}) {
	defer close(done)

	v.rendering.Store(true)
	defer v.rendering.Store(false)

	ticker := time.NewTicker(time.Second / time.Duration(v.cfg.FPSLimit))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			v.controller.Advance(dt)
			scene.Renderer.Render(scene.Graph, scene.Camera)
		}
	}
}
