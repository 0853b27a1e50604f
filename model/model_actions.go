package model

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidStep = errors.New("invalid step")

func Scalar(f float32) Value {
	return Value{Kind: KindScalar, V: [4]float32{f}}
}

func Vec3(x, y, z float32) Value {
	return Value{Kind: KindVector, V: [4]float32{x, y, z}}
}

func RGBA(r, g, b, a float32) Value {
	return Value{Kind: KindColor, V: [4]float32{r, g, b, a}}
}

func (v Value) Channels() int {
	return v.Kind.Channels()
}

// Add offsets v channel by channel, keeping the kind of v.
func (v Value) Add(o Value) Value {
	sum := Value{Kind: v.Kind}
	for i := 0; i < v.Channels(); i++ {
		sum.V[i] = v.V[i] + o.V[i]
	}
	return sum
}

func (v Value) Equal(o Value, eps float32) bool {
	if v.Kind != o.Kind {
		return false
	}
	for i := 0; i < v.Channels(); i++ {
		if math.Abs(float64(v.V[i]-o.V[i])) > float64(eps) {
			return false
		}
	}
	return true
}

func (v Value) String() string {
	switch v.Kind {
	case KindVector:
		return fmt.Sprintf("(%g, %g, %g)", v.V[0], v.V[1], v.V[2])
	case KindColor:
		return fmt.Sprintf("rgba(%g, %g, %g, %g)", v.V[0], v.V[1], v.V[2], v.V[3])
	default:
		return fmt.Sprintf("%g", v.V[0])
	}
}

// Validate checks durations, delays and that every target shares one kind.
func (s Sequence) Validate() error {
	for i, st := range s.Steps {
		if st.Duration < 0 || st.Delay < 0 {
			return fmt.Errorf("%w: step %d of %q has negative timing (duration %g, delay %g)",
				ErrInvalidStep, i, s.Name, st.Duration, st.Delay)
		}
		if st.Target.Kind != s.Steps[0].Target.Kind {
			return fmt.Errorf("%w: step %d of %q is %s, sequence is %s",
				ErrInvalidStep, i, s.Name, st.Target.Kind.Name(), s.Steps[0].Target.Kind.Name())
		}
	}
	return nil
}

// Resolve offsets every target by origin when the sequence is relative.
// The copy it returns is no longer relative, so resolving twice is harmless.
func (s Sequence) Resolve(origin Value) Sequence {
	resolved := s
	resolved.Steps = make([]Step, len(s.Steps))
	copy(resolved.Steps, s.Steps)
	if !s.Relative {
		return resolved
	}
	for i := range resolved.Steps {
		resolved.Steps[i].Target = resolved.Steps[i].Target.Add(origin)
	}
	resolved.Relative = false
	return resolved
}

func (s Sequence) TotalDuration() float32 {
	var total float32
	for _, st := range s.Steps {
		total += st.Delay + st.Duration
	}
	return total
}
