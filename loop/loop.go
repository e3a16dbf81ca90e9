// Package loop provides the fixed timestep clock and frame statistics used
// by the app main loop.
//
package loop

import "time"

// Defaults for FixedStep.
//
const (
	DefaultDT    = time.Second / 240
	DefaultMaxFT = time.Second
)

// FixedStep is a fixed timestep clock: every frame, the time elapsed since
// the previous frame is accumulated and consumed in steps of DT.
//
// The zero value uses DefaultDT and DefaultMaxFT.
//
type FixedStep struct {
	DT    time.Duration // update interval
	MaxFT time.Duration // frame time cap, prevents a spiral of death after a stall

	tPrev time.Time
	acc   time.Duration
}

func (l *FixedStep) dt() time.Duration {
	if l.DT <= 0 {
		return DefaultDT
	}
	return l.DT
}

// Start resets the clock to now.
//
func (l *FixedStep) Start(now time.Time) {
	l.tPrev = now
	l.acc = 0
}

// Step advances the clock to now and calls update once per elapsed step. It
// returns the time elapsed since the previous frame, capped to MaxFT.
//
func (l *FixedStep) Step(now time.Time, update func(dt time.Duration)) (frameTime time.Duration) {
	maxFT := l.MaxFT
	if maxFT <= 0 {
		maxFT = DefaultMaxFT
	}
	dt := l.dt()
	ft := now.Sub(l.tPrev)
	l.tPrev = now
	if ft > maxFT {
		ft = maxFT
	}
	for l.acc += ft; l.acc >= dt; l.acc -= dt {
		update(dt)
	}
	return ft
}

// Alpha returns the fraction of a step accumulated toward the next update,
// in [0, 1). Use it to interpolate between states when drawing.
//
func (l *FixedStep) Alpha() float64 {
	return float64(l.acc) / float64(l.dt())
}

const timerSamples = 32

// FrameTimer averages frame times over the last 32 frames.
//
type FrameTimer struct {
	samples [timerSamples]time.Duration
	i, n    int
	total   time.Duration
}

// Add records a frame time.
//
func (t *FrameTimer) Add(d time.Duration) {
	t.total += d - t.samples[t.i]
	t.samples[t.i] = d
	t.i = (t.i + 1) % timerSamples
	if t.n < timerSamples {
		t.n++
	}
}

// Average returns the average frame time, or 0 if no frame was recorded.
//
func (t *FrameTimer) Average() time.Duration {
	if t.n == 0 {
		return 0
	}
	return t.total / time.Duration(t.n)
}

// PerSecond returns the average number of frames per second.
//
func (t *FrameTimer) PerSecond() float64 {
	avg := t.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
