// Package animation drives frame-accurate, bidirectional playback of the
// product's articulation clips toward arbitrary target frames.
package animation

// FrameRate converts elapsed mixer seconds to discrete frame numbers.
const FrameRate = 60

// Clip describes a single animation track bundled with a loaded scene.
type Clip struct {
	Name     string
	Duration float64 // seconds
}

// Mixer is the shared clock that advances every action in lock-step.
// Negative deltas rewind; time never goes below zero.
type Mixer struct {
	time float64
}

// Advance moves the mixer clock by dt seconds (dt may be negative).
func (m *Mixer) Advance(dt float64) {
	m.time += dt
	if m.time < 0 {
		m.time = 0
	}
}

// SetTime sets the mixer clock to an exact value.
func (m *Mixer) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	m.time = t
}

// Time returns the current mixer clock.
func (m *Mixer) Time() float64 {
	return m.time
}

// action is the playback handle for one clip. The loop mode is play-once-and-
// clamp: the sampled time holds at the last sample instead of rewinding.
type action struct {
	clip   Clip
	paused bool
	time   float64
}

// syncTo samples the shared mixer clock, clamping into the clip's range.
func (a *action) syncTo(mixerTime float64) {
	t := mixerTime
	if a.clip.Duration > 0 && t > a.clip.Duration {
		t = a.clip.Duration
	}
	if t < 0 {
		t = 0
	}
	a.time = t
}
