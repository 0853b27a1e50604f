package effect

import (
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

type ScaleTarget interface {
	Scale() model.Value
	SetScale(s model.Value)
}

// Scale pulses between the scale the target had at Init and EndScale.
type Scale struct {
	base
	Target          ScaleTarget
	EndScale        model.Value
	RepeatOnDisable bool

	initial model.Value
	atEnd   bool
}

func NewScale(interp tween.Interpolator, target ScaleTarget, end model.Value, timing Timing) *Scale {
	return &Scale{
		base:     newBase(interp, timing, "scale"),
		Target:   target,
		EndScale: end,
	}
}

func (s *Scale) Init() error {
	if s.Target == nil {
		return ErrMissingTarget
	}
	if err := s.awake(); err != nil {
		return err
	}
	s.initial = s.Target.Scale()
	s.atEnd = false
	return nil
}

func (s *Scale) Start() {
	s.enable(s.Animate)
}

func (s *Scale) Stop() {
	s.cancel()
	if s.RepeatOnDisable {
		s.Target.SetScale(s.initial)
		s.atEnd = false
	}
}

// Animate heads to whichever end the target is not at; a looping scale chains itself.
func (s *Scale) Animate() {
	s.cancel()
	to := s.EndScale
	if s.atEnd {
		to = s.initial
	}
	anim := s.scaleTo(to, s.Delay)
	if s.Loop {
		anim.SetOnComplete(s.Animate)
	}
	s.atEnd = !s.atEnd
}

// ScaleTo animates to an arbitrary scale; a delay of 0 uses the configured one.
func (s *Scale) ScaleTo(to model.Value, delay float32, onComplete func()) {
	s.cancel()
	if delay <= 0 {
		delay = s.Delay
	}
	anim := s.scaleTo(to, delay)
	switch {
	case s.Loop:
		anim.SetLoopPingPong()
	case onComplete != nil:
		anim.SetOnComplete(onComplete)
	}
}

func (s *Scale) scaleTo(to model.Value, delay float32) tween.Animation {
	return s.run(s.Target.Scale(), to, delay, s.Target.SetScale)
}
