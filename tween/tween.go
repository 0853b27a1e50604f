package tween

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/tweenseq/model"
)

// Tween animates every channel of a value with one gween.Tween per channel.
type Tween struct {
	engine     *Engine
	from, to   model.Value
	duration   float32
	channels   []*gween.Tween
	anchor     float64
	start      float64
	pingPong   bool
	onUpdate   func(model.Value)
	onComplete []func()
	completion *Timer
	done       bool
}

func (e *Engine) animate(from, to model.Value, duration float32, easing ease.TweenFunc) *Tween {
	if duration < 0 {
		duration = 0
	}
	if easing == nil {
		easing = ease.Linear
	}
	t := &Tween{
		engine:   e,
		from:     from,
		to:       to,
		duration: duration,
		channels: make([]*gween.Tween, to.Channels()),
		anchor:   e.now,
		start:    e.now,
	}
	for i := range t.channels {
		t.channels[i] = gween.New(from.V[i], to.V[i], duration, easing)
	}
	t.completion = e.schedule(t.start+float64(duration), t.complete)
	t.completion.internal = true
	e.tweens = append(e.tweens, t)
	return t
}

func (t *Tween) SetDelay(delay float32) Animation {
	if delay < 0 {
		delay = 0
	}
	t.start = t.anchor + float64(delay)
	if t.completion != nil {
		t.completion.due = t.start + float64(t.duration)
	}
	return t
}

func (t *Tween) SetOnUpdate(f func(model.Value)) Animation {
	t.onUpdate = f
	return t
}

func (t *Tween) SetOnComplete(f func()) Animation {
	if t.onComplete == nil {
		t.onComplete = make([]func(), 0)
	}
	t.onComplete = append(t.onComplete, f)
	return t
}

// SetLoopPingPong makes the tween bounce between from and to until cancelled.
// OnComplete never fires for a ping-pong tween.
func (t *Tween) SetLoopPingPong() Animation {
	t.pingPong = true
	if t.completion != nil {
		t.completion.Cancel()
		t.completion = nil
	}
	return t
}

func (t *Tween) Cancel() {
	if t.done {
		return
	}
	t.done = true
	if t.completion != nil {
		t.completion.Cancel()
	}
}

func (t *Tween) Done() bool {
	return t.done
}

func (t *Tween) complete() {
	if t.done {
		return
	}
	t.done = true
	if t.onUpdate != nil {
		t.onUpdate(t.to)
	}
	for _, f := range t.onComplete {
		f()
	}
}

func (t *Tween) sample(now float64) {
	local := float32(now - t.start)
	if local < 0 {
		return
	}
	if t.pingPong {
		local = t.bounce(local)
	} else if local > t.duration {
		local = t.duration
	}
	if t.onUpdate != nil {
		t.onUpdate(t.valueAt(local))
	}
}

// bounce folds local time into [0, duration], running backwards on odd cycles.
func (t *Tween) bounce(local float32) float32 {
	if t.duration <= 0 {
		return t.duration
	}
	d := float64(t.duration)
	cycle := math.Floor(float64(local) / d)
	frac := float64(local) - cycle*d
	if int64(cycle)%2 == 1 {
		return float32(d - frac)
	}
	return float32(frac)
}

func (t *Tween) valueAt(local float32) model.Value {
	if t.duration <= 0 {
		return t.to
	}
	v := model.Value{Kind: t.to.Kind}
	for i, ch := range t.channels {
		v.V[i], _ = ch.Set(local)
	}
	return v
}
