package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPositionOrbitsCenter(t *testing.T) {
	c := NewOrbitCamera()

	for _, yaw := range []float32{0, 0.5, 1.5, 3.0} {
		c.RotationY = yaw
		d := c.Position().Sub(c.Center).Len()
		if math.Abs(float64(d-c.Distance)) > 1e-5 {
			t.Errorf("yaw %v: distance to center %v, want %v", yaw, d, c.Distance)
		}
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("expected pitch clamped at %v, got %v", c.MaxPitch, c.RotationX)
	}

	c.HandleDrag(0, -20000)
	if c.RotationX != c.MinPitch {
		t.Errorf("expected pitch clamped at %v, got %v", c.MinPitch, c.RotationX)
	}
}

func TestHandleZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 200; i++ {
		c.HandleZoom(10)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("expected distance clamped at %v, got %v", c.MinDistance, c.Distance)
	}

	for i := 0; i < 200; i++ {
		c.HandleZoom(-10)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("expected distance clamped at %v, got %v", c.MaxDistance, c.Distance)
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	view := c.ViewMatrix()

	// The center must land on the negative Z axis in view space.
	p := mgl32.TransformCoordinate(c.Center, view)
	if math.Abs(float64(p.X())) > 1e-5 || math.Abs(float64(p.Y())) > 1e-5 {
		t.Errorf("center not on view axis: %v", p)
	}
	if p.Z() >= 0 {
		t.Errorf("center not in front of camera: %v", p)
	}
}
