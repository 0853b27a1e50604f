package effect

import (
	"fmt"

	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

type PositionTarget interface {
	SetPosition(p model.Value)
}

// Move walks its target through a list of waypoints with a tween.Sequencer.
type Move struct {
	base
	Target           PositionTarget
	StartingPosition model.Value
	Relative         bool
	Movements        []model.Step
	// OnTargetFound runs on every activation, before the target is snapped to StartingPosition.
	OnTargetFound func()

	seq      *tween.Sequencer
	playback *tween.Playback
}

func NewMove(interp tween.Interpolator, target PositionTarget, start model.Value, movements []model.Step, timing Timing) *Move {
	return &Move{
		base:             newBase(interp, timing, "move"),
		Target:           target,
		StartingPosition: start,
		Movements:        movements,
	}
}

func (m *Move) Init() error {
	if m.Target == nil {
		return ErrMissingTarget
	}
	if m.interp == nil {
		return tween.ErrNoInterpolator
	}
	m.first = true
	name := "move"
	if m.object != nil {
		name = m.object.Name
	}
	seq, err := tween.NewSequencer(m.interp, model.Sequence{
		Name:     name,
		Steps:    m.Movements,
		Loop:     m.Loop,
		Relative: m.Relative,
	}, m.StartingPosition, m.Target.SetPosition,
		tween.WithEasing(m.Easing),
		tween.WithLogger(m.log))
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	m.seq = seq
	return nil
}

func (m *Move) Start() {
	if m.OnTargetFound != nil {
		m.OnTargetFound()
	}
	m.Target.SetPosition(m.StartingPosition)
	m.enable(m.Animate)
}

// Stop cancels the walk and puts the target back on StartingPosition.
func (m *Move) Stop() {
	if m.seq == nil {
		return
	}
	m.seq.Stop()
	m.playback = nil
}

func (m *Move) Animate() {
	m.MoveObject(-1, nil)
}

// MoveObject plays one waypoint, or all of them for index -1.
func (m *Move) MoveObject(index int, onSettled func(index int)) *tween.Playback {
	pb := m.seq.Play(index, onSettled)
	if !pb.Done() {
		m.playback = pb
	}
	return pb
}

// Sequencer exposes the resolved waypoints and playback state.
func (m *Move) Sequencer() *tween.Sequencer {
	return m.seq
}

func (m *Move) Playing() bool {
	return m.playback != nil && !m.playback.Done()
}
