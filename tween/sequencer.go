package tween

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/tweenseq/model"
)

var (
	ErrNoInterpolator = errors.New("no interpolator")
	ErrNoTarget       = errors.New("no target to drive")
	ErrZeroLoop       = errors.New("looping sequence takes no time")
)

// Playback is one run of a sequence. Cancelling it cancels every tween and
// pending transition the run scheduled.
type Playback struct {
	handles []Cancelable
	index   int
	done    bool
}

func (p *Playback) track(c Cancelable) {
	p.handles = append(p.handles, c)
}

func (p *Playback) Cancel() {
	if p.done {
		return
	}
	p.done = true
	for _, h := range p.handles {
		h.Cancel()
	}
	p.handles = nil
}

func (p *Playback) finish() {
	p.done = true
	p.handles = nil
}

func (p *Playback) Done() bool {
	return p.done
}

// Index is the step currently playing, or the last one played.
func (p *Playback) Index() int {
	return p.index
}

type Option func(*Sequencer)

func WithEasing(f ease.TweenFunc) Option {
	return func(s *Sequencer) {
		if f != nil {
			s.easing = f
		}
	}
}

func WithLogger(l *log.Entry) Option {
	return func(s *Sequencer) {
		if l != nil {
			s.log = l
		}
	}
}

// Sequencer plays the steps of a sequence one after another through an Interpolator.
// At most one playback is live at a time.
type Sequencer struct {
	interp   Interpolator
	seq      model.Sequence
	start    model.Value
	value    model.Value
	apply    func(model.Value)
	easing   ease.TweenFunc
	playback *Playback
	log      *log.Entry
}

// NewSequencer resolves relative targets against start once and keeps the result for every playback.
func NewSequencer(interp Interpolator, seq model.Sequence, start model.Value, apply func(model.Value), opts ...Option) (*Sequencer, error) {
	if interp == nil {
		return nil, fmt.Errorf("sequence %q: %w", seq.Name, ErrNoInterpolator)
	}
	if apply == nil {
		return nil, fmt.Errorf("sequence %q: %w", seq.Name, ErrNoTarget)
	}
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	if seq.Loop && len(seq.Steps) > 0 && seq.TotalDuration() <= 0 {
		return nil, fmt.Errorf("sequence %q: %w", seq.Name, ErrZeroLoop)
	}
	s := &Sequencer{
		interp: interp,
		seq:    seq.Resolve(start),
		start:  start,
		value:  start,
		apply:  apply,
		easing: ease.Linear,
		log:    log.WithFields(log.Fields{"component": "sequencer", "sequence": seq.Name}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Sequencer) Sequence() model.Sequence {
	return s.seq
}

func (s *Sequencer) Start() model.Value {
	return s.start
}

// Value is the last value the sequencer drove.
func (s *Sequencer) Value() model.Value {
	return s.value
}

func (s *Sequencer) Playing() bool {
	return s.playback != nil && !s.playback.done
}

// Play runs the step at startIndex alone, or every step from 0 when startIndex is -1.
// Indices out of range are ignored and leave any current playback alone.
// onStepSettled is called with the step index once each step reached its target.
func (s *Sequencer) Play(startIndex int, onStepSettled func(index int)) *Playback {
	n := len(s.seq.Steps)
	if n == 0 || startIndex < -1 || startIndex >= n {
		s.log.Debugf("Play ignored, index %d of %d steps", startIndex, n)
		return &Playback{index: startIndex, done: true}
	}
	s.cancel()

	pb := &Playback{handles: make([]Cancelable, 0, 3)}
	s.playback = pb
	if startIndex >= 0 {
		s.playStep(pb, startIndex, func() {
			if onStepSettled != nil {
				onStepSettled(startIndex)
			}
			pb.finish()
		})
		return pb
	}
	s.playFrom(pb, 0, onStepSettled)
	return pb
}

// PlayStep plays a single step as its own playback.
func (s *Sequencer) PlayStep(index int) *Playback {
	return s.Play(index, nil)
}

func (s *Sequencer) playFrom(pb *Playback, i int, onStepSettled func(int)) {
	s.playStep(pb, i, func() {
		if onStepSettled != nil {
			onStepSettled(i)
		}
		if pb.done {
			return
		}
		switch {
		case i+1 < len(s.seq.Steps):
			s.playFrom(pb, i+1, onStepSettled)
		case s.seq.Loop:
			s.log.Debug("sequence looped")
			s.playFrom(pb, 0, onStepSettled)
		default:
			s.log.Debug("sequence finished")
			pb.finish()
		}
	})
}

func (s *Sequencer) playStep(pb *Playback, i int, settled func()) {
	step := s.seq.Steps[i]
	pb.index = i
	pb.handles = pb.handles[:0]
	s.log.Debugf("step %d -> %v in %gs after %gs", i, step.Target, step.Duration, step.Delay)

	// scheduled first so a zero-length step still calls back before it arrives
	if step.Callback != nil && !step.CallbackAtArrival {
		pb.track(s.interp.After(step.Delay, step.Callback))
	}
	// arrival rides on the tween completion, which applies the target first
	anim := s.interp.Animate(s.value, step.Target, step.Duration, s.easing).
		SetDelay(step.Delay).
		SetOnUpdate(s.set).
		SetOnComplete(func() {
			if step.Callback != nil && step.CallbackAtArrival {
				step.Callback()
			}
			if pb.done {
				return
			}
			settled()
		})
	pb.track(anim)
}

// Stop cancels the running playback and puts the driven value back to the start value.
func (s *Sequencer) Stop() {
	s.cancel()
	s.set(s.start)
}

func (s *Sequencer) cancel() {
	if s.playback != nil {
		s.playback.Cancel()
		s.playback = nil
	}
}

func (s *Sequencer) set(v model.Value) {
	s.value = v
	s.apply(v)
}
