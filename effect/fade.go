package effect

import (
	"math/rand"

	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

// AlphaTarget is an image, a text or a whole group whose opacity can be driven.
type AlphaTarget interface {
	Alpha() float32
	SetAlpha(a float32)
}

// Fade animates opacity between MinAlpha and MaxAlpha, flipping direction on every Animate.
type Fade struct {
	base
	Target AlphaTarget
	Style  FadeStyle
	// MinAlpha and MaxAlpha bound the fade, 0 and 1 from NewFade.
	MinAlpha, MaxAlpha    float32
	RepeatOnDisable       bool
	InactiveOnTransparent bool
	// RandomDelay, when its upper bound is set, pauses a looping fade for a random
	// time in [RandomDelay[0], RandomDelay[1]) between legs.
	RandomDelay [2]float32
	Rand        *rand.Rand

	initialAlpha float32
	initialStyle FadeStyle
}

func NewFade(interp tween.Interpolator, target AlphaTarget, timing Timing) *Fade {
	return &Fade{
		base:     newBase(interp, timing, "fade"),
		Target:   target,
		MinAlpha: 0,
		MaxAlpha: 1,
	}
}

func (f *Fade) Init() error {
	if f.Target == nil {
		return ErrMissingTarget
	}
	if err := f.awake(); err != nil {
		return err
	}
	f.initialStyle = f.Style
	return nil
}

func (f *Fade) Start() {
	f.initialAlpha = f.boundFor(f.Style.toggle())
	// a fade that waits to be triggered leaves the target as the host set it
	if f.StartOnEnable {
		f.Target.SetAlpha(f.initialAlpha)
	}
	f.enable(f.Animate)
}

func (f *Fade) Stop() {
	f.cancel()
	if f.RepeatOnDisable {
		f.Target.SetAlpha(f.initialAlpha)
		f.Style = f.initialStyle
	}
}

// Animate fades toward the bound of the current style and flips the style for the next call.
func (f *Fade) Animate() {
	f.cancel()
	style := f.Style
	f.Style = style.toggle()
	f.log.Debugf("fade %s", style.Name())

	switch {
	case f.Loop && f.randomized():
		f.fadeTo(style, 0).SetOnComplete(func() {
			f.after(f.randomDelay(), f.Animate)
		})
	case f.Loop:
		f.fadeTo(style, 0).SetLoopPingPong()
	default:
		anim := f.fadeTo(style, f.Delay)
		if style == FadeOut && f.InactiveOnTransparent {
			anim.SetOnComplete(f.deactivate)
		}
	}
}

// FadeTo fades in or out without touching the style toggle.
func (f *Fade) FadeTo(in bool) {
	f.cancel()
	style := FadeOut
	if in {
		style = FadeIn
	}
	anim := f.fadeTo(style, 0)
	switch {
	case f.Loop:
		anim.SetLoopPingPong()
	case style == FadeOut && f.InactiveOnTransparent:
		anim.SetOnComplete(f.deactivate)
	}
}

// FadeOut fades to MinAlpha right away, deactivating the object when InactiveOnTransparent.
func (f *Fade) FadeOut() {
	f.cancel()
	anim := f.fadeTo(FadeOut, 0)
	if f.InactiveOnTransparent {
		anim.SetOnComplete(f.deactivate)
	}
}

// Reset cancels the fade and puts back the starting alpha bound and style.
func (f *Fade) Reset() {
	f.cancel()
	f.Target.SetAlpha(f.initialAlpha)
	f.Style = f.initialStyle
}

func (f *Fade) fadeTo(style FadeStyle, delay float32) tween.Animation {
	from := model.Scalar(f.Target.Alpha())
	to := model.Scalar(f.boundFor(style))
	return f.run(from, to, delay, func(v model.Value) {
		f.Target.SetAlpha(v.V[0])
	})
}

func (f *Fade) boundFor(style FadeStyle) float32 {
	if style == FadeIn {
		return f.MaxAlpha
	}
	return f.MinAlpha
}

func (f *Fade) randomized() bool {
	return f.RandomDelay[1] > 0
}

func (f *Fade) randomDelay() float32 {
	lo, hi := f.RandomDelay[0], f.RandomDelay[1]
	if hi <= lo {
		return lo
	}
	var r float32
	if f.Rand != nil {
		r = f.Rand.Float32()
	} else {
		r = rand.Float32()
	}
	return lo + r*(hi-lo)
}
