package animation

import (
	"math"
	"sync"

	"go.uber.org/zap"
)

// State is the controller's playback state.
type State int

const (
	// StateIdle means no clips are loaded.
	StateIdle State = iota
	// StateReady means clips are loaded and paused.
	StateReady
	// StateSeeking means playback is running toward a target frame.
	StateSeeking
)

// String returns a readable state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateSeeking:
		return "seeking"
	default:
		return "unknown"
	}
}

// Status labels the phase a frame notification belongs to.
type Status string

const (
	StatusStarted   Status = "started"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
)

// FrameEvent is delivered to the frame callback as playback progresses.
type FrameEvent struct {
	Current int
	Target  int
	Status  Status
}

// FrameFunc receives frame notifications. It may call back into the
// controller (e.g. redirect with PlayToFrame).
type FrameFunc func(FrameEvent)

// Controller owns one playback action per clip, all driven in lock-step by a
// shared mixer clock. It plays toward arbitrary target frames in either
// direction and converges on the target exactly.
type Controller struct {
	mu sync.Mutex

	log     *zap.Logger
	actions map[string]*action
	mixer   Mixer

	current   int
	target    int
	direction int
	playing   bool
	speed     float64
	onFrame   FrameFunc
	state     State
}

// NewController creates a controller in the idle state.
func NewController(log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		log:   log,
		speed: 1.0,
		state: StateIdle,
	}
}

// Initialize loads the given clips, building one clamp-at-end action per clip.
// Every action is started and immediately paused so the first PlayToFrame has
// no startup latency. The mixer clock is reset to zero.
func (c *Controller) Initialize(clips []Clip) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.actions = make(map[string]*action, len(clips))
	for _, clip := range clips {
		// Started at time zero and immediately held paused, so the first
		// real play call has no startup latency.
		a := &action{clip: clip, paused: true}
		a.syncTo(0)
		c.actions[clip.Name] = a
	}

	c.mixer.SetTime(0)
	c.current = 0
	c.target = 0
	c.direction = 0
	c.playing = false
	c.state = StateReady

	c.log.Debug("animation clips initialized", zap.Int("clips", len(clips)))
}

// Reset discards all clips and returns the controller to the idle state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.actions = nil
	c.mixer.SetTime(0)
	c.current = 0
	c.target = 0
	c.direction = 0
	c.playing = false
	c.onFrame = nil
	c.state = StateIdle
}

// PlayToFrame starts (or redirects) playback toward the target frame.
// A target equal to the current frame is a no-op: no callback fires and no
// state changes. Calling while already seeking simply overwrites the target
// and direction; no Stop is required first.
func (c *Controller) PlayToFrame(target int, fn FrameFunc) {
	c.mu.Lock()

	if c.state == StateIdle {
		c.mu.Unlock()
		c.log.Warn("play requested before clips were initialized")
		return
	}
	if target < 0 {
		target = 0
	}
	if target == c.current {
		c.mu.Unlock()
		return
	}

	c.target = target
	if target > c.current {
		c.direction = 1
	} else {
		c.direction = -1
	}
	c.playing = true
	c.state = StateSeeking
	if fn != nil {
		c.onFrame = fn
	}
	for _, a := range c.actions {
		a.paused = false
	}

	ev := FrameEvent{Current: c.current, Target: c.target, Status: StatusStarted}
	notify := c.onFrame
	c.mu.Unlock()

	if notify != nil {
		notify(ev)
	}
}

// Advance is called once per render tick with the elapsed wall-clock delta.
// It moves the shared mixer, recomputes the current frame and detects
// arrival, snapping the mixer to the exact target time to eliminate
// floating-point drift at the boundary.
func (c *Controller) Advance(dt float64) {
	c.mu.Lock()

	if !c.playing || c.direction == 0 {
		c.mu.Unlock()
		return
	}

	c.mixer.Advance(dt * float64(c.direction) * c.speed)
	c.current = frameAt(c.mixer.Time())

	arrived := (c.direction > 0 && c.current >= c.target) ||
		(c.direction < 0 && c.current <= c.target)

	var ev FrameEvent
	if arrived {
		c.mixer.SetTime(float64(c.target) / FrameRate)
		c.current = c.target
		for _, a := range c.actions {
			a.syncTo(c.mixer.Time())
			a.paused = true
		}
		c.playing = false
		c.direction = 0
		c.state = StateReady
		ev = FrameEvent{Current: c.current, Target: c.target, Status: StatusCompleted}
	} else {
		for _, a := range c.actions {
			a.syncTo(c.mixer.Time())
		}
		ev = FrameEvent{Current: c.current, Target: c.target, Status: StatusPlaying}
	}

	notify := c.onFrame
	c.mu.Unlock()

	if notify != nil {
		notify(ev)
	}
}

// Stop halts playback at the current frame without snapping to the target.
// Safe to call in any state, and idempotent.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, a := range c.actions {
		a.paused = true
	}
	c.playing = false
	c.direction = 0
	if c.state == StateSeeking {
		c.state = StateReady
	}
}

// SetSpeed sets the playback speed multiplier. Takes effect on the next tick.
// Non-positive values are rejected.
func (c *Controller) SetSpeed(speed float64) {
	if speed <= 0 {
		c.log.Warn("ignoring non-positive animation speed", zap.Float64("speed", speed))
		return
	}
	c.mu.Lock()
	c.speed = speed
	c.mu.Unlock()
}

// State returns the controller's playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentFrame returns the current frame number.
func (c *Controller) CurrentFrame() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// TargetFrame returns the frame playback is converging on.
func (c *Controller) TargetFrame() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Playing reports whether playback is running.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Speed returns the playback speed multiplier.
func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Duration returns the longest loaded clip duration in seconds, 0 when idle.
func (c *Controller) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var d float64
	for _, a := range c.actions {
		if a.clip.Duration > d {
			d = a.clip.Duration
		}
	}
	return d
}

// MixerTime returns the shared mixer clock in seconds.
func (c *Controller) MixerTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mixer.Time()
}

// Paused reports whether the named clip's action is paused.
// Unknown clip names report true.
func (c *Controller) Paused(clip string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.actions[clip]
	if !ok {
		return true
	}
	return a.paused
}

// frameAt converts a mixer time to the nearest frame number.
func frameAt(t float64) int {
	f := int(math.Round(t * FrameRate))
	if f < 0 {
		return 0
	}
	return f
}
