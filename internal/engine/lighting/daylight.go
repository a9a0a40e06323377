// Package lighting configures the viewer's light rig and sky model and maps a
// simulated time-of-day onto light intensities and renderer exposure.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ExposureFloor is the minimum tone-mapping exposure applied to the renderer.
const ExposureFloor = 0.3

// SunDirection converts elevation/azimuth angles (degrees) to a normalized
// direction vector pointing towards the sun. Elevation is measured from the
// horizon (-90 to 90), azimuth is rotation around the Y axis.
func SunDirection(elevationDeg, azimuthDeg float64) mgl32.Vec3 {
	elRad := elevationDeg * math.Pi / 180.0
	azRad := azimuthDeg * math.Pi / 180.0

	x := float32(math.Cos(elRad) * math.Sin(azRad))
	y := float32(math.Sin(elRad))
	z := float32(math.Cos(elRad) * math.Cos(azRad))

	return mgl32.Vec3{x, y, z}
}

// IntensityFactor maps a sun elevation in degrees to a normalized daylight
// factor in [0.1, 1.0]. Ambient and hemisphere lights scale directly with it.
func IntensityFactor(elevationDeg float64) float64 {
	return clamp((elevationDeg+90)/180, 0.1, 1.0)
}

// InverseIntensityFactor is the complementary factor applied to point and
// spot lights: the lamp's own sources dim as daylight rises and return to
// full strength at night.
func InverseIntensityFactor(elevationDeg float64) float64 {
	return clamp(1.1-IntensityFactor(elevationDeg), 0.1, 1.0)
}

// Exposure derives the renderer exposure from a daylight factor, clamped to
// the floor so night scenes stay legible.
func Exposure(factor float64) float64 {
	if factor < ExposureFloor {
		return ExposureFloor
	}
	return factor
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
