package camera

// Controls translates pointer input into orbit camera motion.
type Controls struct {
	cam      *OrbitCamera
	dragging bool
	lastX    float32
	lastY    float32
}

// NewControls wraps an orbit camera with drag state tracking.
func NewControls(cam *OrbitCamera) *Controls {
	return &Controls{cam: cam}
}

// BeginDrag starts a drag at the given pointer position.
func (c *Controls) BeginDrag(x, y float32) {
	c.dragging = true
	c.lastX = x
	c.lastY = y
}

// Drag rotates the camera by the pointer delta while a drag is active.
func (c *Controls) Drag(x, y float32) {
	if !c.dragging {
		return
	}
	c.cam.HandleDrag(x-c.lastX, y-c.lastY)
	c.lastX = x
	c.lastY = y
}

// EndDrag finishes the active drag.
func (c *Controls) EndDrag() {
	c.dragging = false
}

// Scroll zooms the camera by the wheel delta.
func (c *Controls) Scroll(delta float32) {
	c.cam.HandleZoom(delta)
}

// Dragging reports whether a drag is active.
func (c *Controls) Dragging() bool {
	return c.dragging
}
