package effect

import (
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

// RotationTarget is rotated around its z axis, in degrees.
type RotationTarget interface {
	Rotation() float32
	SetRotation(deg float32)
}

type Rotate struct {
	base
	Target        RotationTarget
	StartRotation float32
	EndRotation   float32
	OnFinished    func()

	atStart bool
}

func NewRotate(interp tween.Interpolator, target RotationTarget, timing Timing) *Rotate {
	return &Rotate{
		base:   newBase(interp, timing, "rotate"),
		Target: target,
	}
}

func (r *Rotate) Init() error {
	if r.Target == nil {
		return ErrMissingTarget
	}
	return r.awake()
}

func (r *Rotate) Start() {
	r.atStart = true
	r.Target.SetRotation(r.StartRotation)
	r.enable(r.Animate)
}

func (r *Rotate) Stop() {
	r.cancel()
}

// Animate swings between StartRotation and EndRotation, one leg per call unless looping.
func (r *Rotate) Animate() {
	r.cancel()
	if r.Loop {
		r.rotateTo(r.EndRotation, r.Duration).SetLoopPingPong()
	} else {
		to := r.StartRotation
		if r.atStart {
			to = r.EndRotation
		}
		r.rotateTo(to, r.Duration).SetOnComplete(r.finished)
	}
	r.atStart = !r.atStart
}

// Rotate turns to EndRotation when in is set, back to StartRotation otherwise.
func (r *Rotate) Rotate(in bool) {
	r.cancel()
	to := r.StartRotation
	if in {
		to = r.EndRotation
	}
	r.atStart = !in
	r.rotateTo(to, r.Duration).SetOnComplete(r.finished)
}

// RotateTo turns to an arbitrary angle; seconds of 0 uses the configured duration.
func (r *Rotate) RotateTo(deg, seconds float32) {
	r.cancel()
	if seconds <= 0 {
		seconds = r.Duration
	}
	anim := r.rotateTo(deg, seconds)
	if r.Loop {
		anim.SetLoopPingPong()
	} else {
		anim.SetOnComplete(r.finished)
	}
}

func (r *Rotate) Reset() {
	r.cancel()
}

func (r *Rotate) rotateTo(deg, seconds float32) tween.Animation {
	return r.runFor(model.Scalar(r.Target.Rotation()), model.Scalar(deg), seconds, r.Delay, func(v model.Value) {
		r.Target.SetRotation(v.V[0])
	})
}

func (r *Rotate) finished() {
	if r.OnFinished != nil {
		r.OnFinished()
	}
}
