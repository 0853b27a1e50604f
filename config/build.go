package config

import (
	"fmt"
	"strings"

	"github.com/zucenko/tweenseq/effect"
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

func ParseStyle(style string) (effect.FadeStyle, error) {
	switch strings.ToLower(style) {
	case "", "in", "fadein":
		return effect.FadeIn, nil
	case "out", "fadeout":
		return effect.FadeOut, nil
	default:
		return 0, fmt.Errorf("unknown fade style %q", style)
	}
}

func (ec EffectConfig) validate() error {
	switch ec.Type {
	case "fade", "fill", "rotate", "scale", "move":
	default:
		return fmt.Errorf("unknown effect type %q", ec.Type)
	}
	if _, err := ec.Timing(); err != nil {
		return err
	}
	if _, err := ParseStyle(ec.Style); err != nil {
		return err
	}
	if ec.Type != "move" && ec.Loop && ec.Duration <= 0 {
		return tween.ErrZeroLoop
	}
	if n := len(ec.RandomDelay); n != 0 && n != 2 {
		return fmt.Errorf("randomDelay needs [min, max], got %d values", n)
	}
	if ec.Type == "scale" {
		if _, err := ParseValue(model.KindVector, ec.EndScale); err != nil {
			return fmt.Errorf("endScale: %v", err)
		}
	}
	return nil
}

// Timing converts the settings shared by every effect.
func (ec EffectConfig) Timing() (effect.Timing, error) {
	if ec.Duration < 0 || ec.Delay < 0 {
		return effect.Timing{}, fmt.Errorf("negative timing (duration %g, delay %g)", ec.Duration, ec.Delay)
	}
	easing, err := tween.EasingByName(ec.Easing)
	if err != nil {
		return effect.Timing{}, err
	}
	return effect.Timing{
		Easing:        easing,
		Duration:      ec.Duration,
		Delay:         ec.Delay,
		StartOnEnable: ec.StartOnEnable,
		FirstTimeOnly: ec.FirstTimeOnly,
		Loop:          ec.Loop,
	}, nil
}

// BuildEffect creates the effect ec describes on target, which must implement the target
// interface of the effect type. events resolves step event names for move effects.
func (s *Scene) BuildEffect(ec EffectConfig, interp tween.Interpolator, target interface{}, events func(name string) func()) (effect.Effect, error) {
	timing, err := ec.Timing()
	if err != nil {
		return nil, fmt.Errorf("effect %q: %w", ec.Name, err)
	}
	style, err := ParseStyle(ec.Style)
	if err != nil {
		return nil, fmt.Errorf("effect %q: %w", ec.Name, err)
	}
	missing := func(want string) error {
		return fmt.Errorf("effect %q needs a %s: %w", ec.Name, want, effect.ErrMissingTarget)
	}

	switch ec.Type {
	case "fade":
		t, ok := target.(effect.AlphaTarget)
		if !ok {
			return nil, missing("AlphaTarget")
		}
		f := effect.NewFade(interp, t, timing)
		f.Style = style
		if ec.MinAlpha != nil {
			f.MinAlpha = *ec.MinAlpha
		}
		if ec.MaxAlpha != nil {
			f.MaxAlpha = *ec.MaxAlpha
		}
		f.RepeatOnDisable = ec.RepeatOnDisable
		f.InactiveOnTransparent = ec.InactiveOnTransparent
		if len(ec.RandomDelay) == 2 {
			f.RandomDelay = [2]float32{ec.RandomDelay[0], ec.RandomDelay[1]}
		}
		return f, nil
	case "fill":
		t, ok := target.(effect.FillTarget)
		if !ok {
			return nil, missing("FillTarget")
		}
		f := effect.NewFill(interp, t, timing)
		f.Style = style
		return f, nil
	case "rotate":
		t, ok := target.(effect.RotationTarget)
		if !ok {
			return nil, missing("RotationTarget")
		}
		r := effect.NewRotate(interp, t, timing)
		r.StartRotation = ec.StartRotation
		r.EndRotation = ec.EndRotation
		return r, nil
	case "scale":
		t, ok := target.(effect.ScaleTarget)
		if !ok {
			return nil, missing("ScaleTarget")
		}
		end, err := ParseValue(model.KindVector, ec.EndScale)
		if err != nil {
			return nil, fmt.Errorf("effect %q endScale: %v", ec.Name, err)
		}
		sc := effect.NewScale(interp, t, end, timing)
		sc.RepeatOnDisable = ec.RepeatOnDisable
		return sc, nil
	case "move":
		t, ok := target.(effect.PositionTarget)
		if !ok {
			return nil, missing("PositionTarget")
		}
		sc, err := s.FindSequence(ec.Sequence)
		if err != nil {
			return nil, fmt.Errorf("effect %q: %w", ec.Name, err)
		}
		built, err := sc.Build(events)
		if err != nil {
			return nil, fmt.Errorf("effect %q: %w", ec.Name, err)
		}
		if ec.Easing == "" {
			timing.Easing = built.Easing
		}
		timing.Loop = timing.Loop || built.Sequence.Loop
		m := effect.NewMove(interp, t, built.Start, built.Sequence.Steps, timing)
		m.Relative = built.Sequence.Relative
		return m, nil
	default:
		return nil, fmt.Errorf("effect %q: unknown effect type %q", ec.Name, ec.Type)
	}
}
