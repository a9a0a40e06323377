package lighting

import (
	"go.uber.org/zap"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
)

// Names of the light nodes the loaded product model may carry. A model
// variant without them simply loses the matching light.
const (
	PointNodeName = "Point"
	SpotNodeName  = "Spot"
)

// Default baseline intensities for lights the rig creates or adopts.
const (
	defaultAmbientIntensity    = 0.5
	defaultHemisphereIntensity = 0.9
	defaultLampIntensity       = 1.0
	defaultFillIntensity       = 0.4
)

// ExposureSetter is the one renderer capability the rig needs.
type ExposureSetter interface {
	SetExposure(e float32)
}

// Rig owns the named light references and sky vectors for one activation.
type Rig struct {
	log *zap.Logger

	ambient    *scenegraph.Node
	hemisphere *scenegraph.Node
	point      *scenegraph.Node
	spot       *scenegraph.Node
	sky        *scenegraph.Node

	baseAmbient    float32
	baseHemisphere float32
	basePoint      float32
	baseSpot       float32

	sun mgl32.Vec3

	configured    bool
	skyConfigured bool
}

// NewRig creates an unconfigured light rig.
func NewRig(log *zap.Logger) *Rig {
	if log == nil {
		log = zap.NewNop()
	}
	return &Rig{log: log}
}

// Configure sets up the light rig on the loaded graph: creates ambient and
// hemisphere lights under the root and adopts the model's "Point" and "Spot"
// nodes when present. Runs once per activation; later calls are no-ops.
func (r *Rig) Configure(g *scenegraph.Graph) {
	if r.configured {
		return
	}

	r.ambient = scenegraph.NewNode("Ambient", scenegraph.KindAmbientLight)
	r.ambient.Intensity = defaultAmbientIntensity
	g.Attach(r.ambient)

	r.hemisphere = scenegraph.NewNode("Hemisphere", scenegraph.KindHemisphereLight)
	r.hemisphere.Intensity = defaultHemisphereIntensity
	g.Attach(r.hemisphere)

	r.baseAmbient = r.ambient.Intensity
	r.baseHemisphere = r.hemisphere.Intensity

	r.point = r.adoptLamp(g, PointNodeName, scenegraph.KindPointLight, &r.basePoint)
	r.spot = r.adoptLamp(g, SpotNodeName, scenegraph.KindSpotLight, &r.baseSpot)

	r.configured = true
}

// adoptLamp locates a named light node inside the loaded graph. Absence is
// non-fatal: the feature degrades to a lamp without that light.
func (r *Rig) adoptLamp(g *scenegraph.Graph, name string, kind scenegraph.Kind, base *float32) *scenegraph.Node {
	n := g.FindByName(name)
	if n == nil {
		r.log.Debug("light node absent in model, skipping", zap.String("node", name))
		return nil
	}
	n.Kind = kind
	if n.Intensity <= 0 {
		n.Intensity = defaultLampIntensity
	}
	*base = n.Intensity
	return n
}

// ConfigureSky adds the sky dome to the graph. Runs once per activation.
func (r *Rig) ConfigureSky(g *scenegraph.Graph) {
	if r.skyConfigured {
		return
	}

	r.sky = scenegraph.NewNode("Sky", scenegraph.KindSky)
	r.sky.Intensity = 1.0
	r.sun = SunDirection(90, 90)
	r.sky.Direction = r.sun
	g.Attach(r.sky)

	r.skyConfigured = true
}

// NewFillLight returns the fixed-direction fill light the lifecycle adds
// after environment setup. Its direction and intensity never vary with
// time-of-day.
func NewFillLight() *scenegraph.Node {
	n := scenegraph.NewNode("Fill", scenegraph.KindDirectionalLight)
	n.Direction = mgl32.Vec3{-0.3, 0.8, 0.5}.Normalize()
	n.Intensity = defaultFillIntensity
	return n
}

// Ready reports whether both Configure and ConfigureSky have run.
func (r *Rig) Ready() bool {
	return r.configured && r.skyConfigured
}

// SunVector returns the current sun direction.
func (r *Rig) SunVector() mgl32.Vec3 {
	return r.sun
}

// SetTimeOfDay repositions the sun and rescales light intensities for the
// given elevation/azimuth. Ambient and hemisphere scale with the daylight
// factor; point and spot scale with the inverse factor. No-op until the
// environment setup has completed.
func (r *Rig) SetTimeOfDay(elevationDeg, azimuthDeg float64, exposure ExposureSetter) {
	if !r.Ready() {
		return
	}

	factor := IntensityFactor(elevationDeg)
	inverse := InverseIntensityFactor(elevationDeg)

	r.ambient.Intensity = r.baseAmbient * float32(factor)
	r.hemisphere.Intensity = r.baseHemisphere * float32(factor)
	if r.point != nil {
		r.point.Intensity = r.basePoint * float32(inverse)
	}
	if r.spot != nil {
		r.spot.Intensity = r.baseSpot * float32(inverse)
	}

	r.sun = SunDirection(elevationDeg, azimuthDeg)
	r.sky.Direction = r.sun

	if exposure != nil {
		exposure.SetExposure(float32(Exposure(factor)))
	}

	r.log.Debug("time of day applied",
		zap.Float64("elevation", elevationDeg),
		zap.Float64("azimuth", azimuthDeg),
		zap.Float64("factor", factor))
}
