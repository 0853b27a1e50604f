package model

import "fmt"

type Kind int

const (
	KindScalar Kind = iota
	KindVector
	KindColor
)

func (k Kind) Name() string {
	switch k {
	case KindScalar:
		return "SCALAR"
	case KindVector:
		return "VECTOR"
	case KindColor:
		return "COLOR"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

// Channels is the number of float channels a value of this kind carries.
func (k Kind) Channels() int {
	switch k {
	case KindVector:
		return 3
	case KindColor:
		return 4
	default:
		return 1
	}
}

// Value is the thing a step drives toward: a scalar, an xyz vector or an rgba color.
// Unused channels stay zero.
type Value struct {
	Kind Kind
	V    [4]float32
}

// Step is one interpolation leg of a Sequence.
type Step struct {
	Target   Value
	Duration float32
	Delay    float32
	// CallbackAtArrival fires Callback after Delay+Duration instead of right after Delay.
	CallbackAtArrival bool
	Callback          func()
	// Event names the callback for steps coming from configuration.
	Event string
}

type Sequence struct {
	Name     string
	Steps    []Step
	Loop     bool
	Relative bool
}
