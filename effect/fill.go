package effect

import (
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

// FillTarget is a bar or radial image with a 0..1 fill amount.
type FillTarget interface {
	Fill() float32
	SetFill(amount float32)
}

type Fill struct {
	base
	Target FillTarget
	// Style is the direction of the next Animate, FadeIn fills up to 1.
	Style FadeStyle

	startFill float32
}

func NewFill(interp tween.Interpolator, target FillTarget, timing Timing) *Fill {
	return &Fill{
		base:   newBase(interp, timing, "fill"),
		Target: target,
	}
}

func (f *Fill) Init() error {
	if f.Target == nil {
		return ErrMissingTarget
	}
	if err := f.awake(); err != nil {
		return err
	}
	f.startFill = f.Target.Fill()
	return nil
}

func (f *Fill) Start() {
	f.Target.SetFill(f.startFill)
	f.enable(f.Animate)
}

func (f *Fill) Stop() {
	f.cancel()
}

func (f *Fill) Animate() {
	f.cancel()
	style := f.Style
	f.Style = style.toggle()
	anim := f.fillTo(style == FadeIn)
	if f.Loop {
		anim.SetLoopPingPong()
	}
}

func (f *Fill) FillIn() {
	f.cancel()
	f.fillTo(true)
}

func (f *Fill) FillOut() {
	f.cancel()
	f.fillTo(false)
}

func (f *Fill) fillTo(full bool) tween.Animation {
	var to float32
	if full {
		to = 1
	}
	return f.run(model.Scalar(f.Target.Fill()), model.Scalar(to), f.Delay, func(v model.Value) {
		f.Target.SetFill(v.V[0])
	})
}
