// Package tween drives gween tweens and delayed callbacks from a host frame loop
// and sequences multi-step animations on top of them.
package tween

import (
	"github.com/tanema/gween/ease"
	"github.com/zucenko/tweenseq/model"
)

// Cancelable is anything scheduled on an Interpolator that can be called off.
type Cancelable interface {
	Cancel()
}

// Animation is the fluent handle returned by Interpolator.Animate.
type Animation interface {
	SetDelay(delay float32) Animation
	SetOnUpdate(f func(model.Value)) Animation
	SetOnComplete(f func()) Animation
	SetLoopPingPong() Animation
	Cancel()
	Done() bool
}

// Interpolator animates values over time and runs delayed callbacks.
type Interpolator interface {
	Animate(from, to model.Value, duration float32, easing ease.TweenFunc) Animation
	After(delay float32, f func()) Cancelable
}

// Timer is a callback scheduled at a fixed logical time.
type Timer struct {
	due       float64
	seq       uint64
	f         func()
	fired     bool
	cancelled bool
	internal  bool
}

func (t *Timer) Cancel() {
	t.cancelled = true
}

// Done reports whether the callback already ran or was cancelled.
func (t *Timer) Done() bool {
	return !t.pending()
}

func (t *Timer) pending() bool {
	return !t.fired && !t.cancelled
}

// Engine is the Interpolator driven by Update once per frame.
// It is not safe for concurrent use; keep it on the goroutine running the loop.
type Engine struct {
	now    float64
	seq    uint64
	timers []*Timer
	tweens []*Tween
}

func NewEngine() *Engine {
	return &Engine{
		timers: make([]*Timer, 0),
		tweens: make([]*Tween, 0),
	}
}

// Now is the logical time in seconds. Inside a callback it is the callback's due time.
func (e *Engine) Now() float64 {
	return e.now
}

func (e *Engine) After(delay float32, f func()) Cancelable {
	if delay < 0 {
		delay = 0
	}
	return e.schedule(e.now+float64(delay), f)
}

func (e *Engine) schedule(at float64, f func()) *Timer {
	e.seq++
	t := &Timer{due: at, seq: e.seq, f: f}
	e.timers = append(e.timers, t)
	return t
}

func (e *Engine) Animate(from, to model.Value, duration float32, easing ease.TweenFunc) Animation {
	return e.animate(from, to, duration, easing)
}

// Update advances the clock by dt seconds. Due callbacks run in due order (ties in
// scheduling order) at their nominal time, then running tweens are sampled once.
func (e *Engine) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}
	target := e.now + float64(dt)
	for {
		t := e.nextDue(target)
		if t == nil {
			break
		}
		e.now = t.due
		t.fired = true
		t.f()
	}
	e.now = target
	e.compact()

	tweens := make([]*Tween, len(e.tweens))
	copy(tweens, e.tweens)
	for _, tw := range tweens {
		if !tw.done {
			tw.sample(e.now)
		}
	}
}

func (e *Engine) nextDue(target float64) *Timer {
	var next *Timer
	for _, t := range e.timers {
		if !t.pending() || t.due > target {
			continue
		}
		if next == nil || t.due < next.due || (t.due == next.due && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (e *Engine) compact() {
	timers := e.timers[:0]
	for _, t := range e.timers {
		if t.pending() {
			timers = append(timers, t)
		}
	}
	e.timers = timers

	tweens := e.tweens[:0]
	for _, tw := range e.tweens {
		if !tw.done {
			tweens = append(tweens, tw)
		}
	}
	e.tweens = tweens
}

// Active counts running tweens and pending callbacks.
func (e *Engine) Active() int {
	n := 0
	for _, t := range e.timers {
		if t.pending() && !t.internal {
			n++
		}
	}
	for _, tw := range e.tweens {
		if !tw.done {
			n++
		}
	}
	return n
}

// CancelAll drops every tween and callback without firing them.
func (e *Engine) CancelAll() {
	for _, tw := range e.tweens {
		tw.Cancel()
	}
	for _, t := range e.timers {
		t.Cancel()
	}
	e.compact()
}
