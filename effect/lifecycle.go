package effect

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

type FadeStyle int

const (
	FadeIn FadeStyle = iota
	FadeOut
)

func (s FadeStyle) Name() string {
	switch s {
	case FadeIn:
		return "FADE_IN"
	case FadeOut:
		return "FADE_OUT"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

func (s FadeStyle) toggle() FadeStyle {
	if s == FadeIn {
		return FadeOut
	}
	return FadeIn
}

// Timing is the part of the configuration every effect shares.
type Timing struct {
	Easing   ease.TweenFunc
	Duration float32
	Delay    float32
	// StartOnEnable animates on activation, only the first one when FirstTimeOnly is set.
	StartOnEnable bool
	FirstTimeOnly bool
	Loop          bool
}

// base carries the lifecycle state shared by the effects and the handles of
// everything they started, so Stop can cancel exactly those.
type base struct {
	Timing
	interp  tween.Interpolator
	object  *Object
	first   bool
	handles []tween.Cancelable
	log     *log.Entry
}

func newBase(interp tween.Interpolator, timing Timing, kind string) base {
	if timing.Easing == nil {
		timing.Easing = ease.Linear
	}
	return base{
		Timing:  timing,
		interp:  interp,
		handles: make([]tween.Cancelable, 0),
		log:     log.WithField("component", kind),
	}
}

func (b *base) bind(o *Object) {
	b.object = o
	b.log = b.log.WithField("object", o.Name)
}

func (b *base) awake() error {
	if b.interp == nil {
		return tween.ErrNoInterpolator
	}
	if b.Loop && b.Duration <= 0 {
		return tween.ErrZeroLoop
	}
	b.first = true
	return nil
}

func (b *base) enable(animate func()) {
	if !b.StartOnEnable {
		return
	}
	if b.FirstTimeOnly && !b.first {
		return
	}
	b.first = false
	animate()
}

func (b *base) run(from, to model.Value, delay float32, onUpdate func(model.Value)) tween.Animation {
	return b.runFor(from, to, b.Duration, delay, onUpdate)
}

func (b *base) runFor(from, to model.Value, duration, delay float32, onUpdate func(model.Value)) tween.Animation {
	anim := b.interp.Animate(from, to, duration, b.Easing).
		SetDelay(delay).
		SetOnUpdate(onUpdate)
	b.track(anim)
	return anim
}

func (b *base) after(delay float32, f func()) {
	b.track(b.interp.After(delay, f))
}

type doneReporter interface {
	Done() bool
}

func (b *base) track(c tween.Cancelable) {
	live := b.handles[:0]
	for _, h := range b.handles {
		if d, ok := h.(doneReporter); ok && d.Done() {
			continue
		}
		live = append(live, h)
	}
	b.handles = append(live, c)
}

func (b *base) cancel() {
	for _, h := range b.handles {
		h.Cancel()
	}
	b.handles = b.handles[:0]
}

// deactivate switches the owning object off, as if the host disabled it.
func (b *base) deactivate() {
	if b.object == nil {
		return
	}
	if err := b.object.SetActive(false); err != nil {
		b.log.Warnf("deactivate failed: %v", err)
	}
}
