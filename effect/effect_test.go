package effect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
)

// sprite implements every target interface.
type sprite struct {
	alpha    float32
	fill     float32
	rotation float32
	scale    model.Value
	pos      model.Value
}

func newSprite() *sprite {
	return &sprite{alpha: 1, scale: model.Vec3(1, 1, 1), pos: model.Vec3(0, 0, 0)}
}

func (s *sprite) Alpha() float32            { return s.alpha }
func (s *sprite) SetAlpha(a float32)        { s.alpha = a }
func (s *sprite) Fill() float32             { return s.fill }
func (s *sprite) SetFill(f float32)         { s.fill = f }
func (s *sprite) Rotation() float32         { return s.rotation }
func (s *sprite) SetRotation(deg float32)   { s.rotation = deg }
func (s *sprite) Scale() model.Value        { return s.scale }
func (s *sprite) SetScale(v model.Value)    { s.scale = v }
func (s *sprite) SetPosition(p model.Value) { s.pos = p }

func run(e *tween.Engine, dt float32, frames int) {
	for i := 0; i < frames; i++ {
		e.Update(dt)
	}
}

// countingEffect records lifecycle calls.
type countingEffect struct {
	inits, starts, stops, animates int
	initErr                        error
}

func (c *countingEffect) Init() error { c.inits++; return c.initErr }
func (c *countingEffect) Start()      { c.starts++ }
func (c *countingEffect) Stop()       { c.stops++ }
func (c *countingEffect) Animate()    { c.animates++ }

func TestObjectLifecycle(t *testing.T) {
	c := &countingEffect{}
	o := NewObject("panel", c)

	require.NoError(t, o.SetActive(true))
	require.NoError(t, o.SetActive(true))
	require.NoError(t, o.SetActive(false))
	require.NoError(t, o.SetActive(true))

	assert.True(t, o.Active())
	assert.Equal(t, 1, c.inits)
	assert.Equal(t, 2, c.starts)
	assert.Equal(t, 1, c.stops)
	assert.Len(t, o.Effects(), 1)
}

func TestObjectInitFailsFast(t *testing.T) {
	e := tween.NewEngine()
	o := NewObject("broken", NewFade(e, nil, Timing{Duration: 1}))
	err := o.SetActive(true)
	assert.ErrorIs(t, err, ErrMissingTarget)
	assert.False(t, o.Active())

	o = NewObject("no engine", NewFill(nil, newSprite(), Timing{Duration: 1}))
	assert.ErrorIs(t, o.SetActive(true), tween.ErrNoInterpolator)

	o = NewObject("zero loop", NewRotate(tween.NewEngine(), newSprite(), Timing{Loop: true}))
	assert.ErrorIs(t, o.SetActive(true), tween.ErrZeroLoop)
}

func TestObjectAddAfterActivation(t *testing.T) {
	e := tween.NewEngine()
	o := NewObject("walker")
	require.NoError(t, o.SetActive(true))

	s := newSprite()
	move := NewMove(e, s, model.Vec3(1, 2, 0), []model.Step{
		{Target: model.Vec3(5, 2, 0), Duration: 1},
	}, Timing{StartOnEnable: true})
	require.NoError(t, o.Add(move))
	require.NotNil(t, move.Sequencer())
	assert.Equal(t, model.Vec3(1, 2, 0), s.pos)
	run(e, .5, 2)
	assert.Equal(t, model.Vec3(5, 2, 0), s.pos)
	require.NoError(t, o.SetActive(false))
	assert.Equal(t, model.Vec3(1, 2, 0), s.pos)

	late := &countingEffect{}
	require.NoError(t, o.Add(late))
	assert.Equal(t, 1, late.inits)
	assert.Equal(t, 0, late.starts, "inactive objects do not start what they get")
	require.NoError(t, o.SetActive(true))
	assert.Equal(t, 1, late.inits)
	assert.Equal(t, 1, late.starts)

	bad := &countingEffect{initErr: errors.New("no sprite")}
	assert.Error(t, o.Add(bad))
	assert.Len(t, o.Effects(), 2)
}

func TestFadeToggles(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	fade := NewFade(e, s, Timing{Duration: 1, StartOnEnable: true})
	o := NewObject("title", fade)

	require.NoError(t, o.SetActive(true))
	assert.Equal(t, float32(0), s.alpha, "fade in starts transparent")
	assert.Equal(t, FadeOut, fade.Style)

	run(e, .25, 2)
	assert.InDelta(t, .5, s.alpha, 1e-4)
	run(e, .25, 2)
	assert.Equal(t, float32(1), s.alpha)

	fade.Animate()
	run(e, .5, 2)
	assert.Equal(t, float32(0), s.alpha)
	assert.Equal(t, FadeIn, fade.Style)
	assert.True(t, o.Active())
}

func TestFadeWithoutStartOnEnableKeepsAlpha(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	fade := NewFade(e, s, Timing{Duration: 1})
	fade.RepeatOnDisable = true
	o := NewObject("badge", fade)

	require.NoError(t, o.SetActive(true))
	assert.Equal(t, float32(1), s.alpha, "activation alone does not hide the target")
	assert.Equal(t, 0, e.Active())

	fade.Animate()
	run(e, .5, 2)
	assert.Equal(t, float32(1), s.alpha)
	require.NoError(t, o.SetActive(false))
	assert.Equal(t, float32(0), s.alpha, "repeat on disable still restores the fade-in bound")
}

func TestFadeFirstTimeOnly(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	fade := NewFade(e, s, Timing{Duration: 1, StartOnEnable: true, FirstTimeOnly: true})
	o := NewObject("hint", fade)

	require.NoError(t, o.SetActive(true))
	run(e, .5, 2)
	assert.Equal(t, float32(1), s.alpha)

	require.NoError(t, o.SetActive(false))
	require.NoError(t, o.SetActive(true))
	run(e, .5, 2)
	assert.Equal(t, float32(1), s.alpha, "Start sets the fade-out bound but nothing animates")
	assert.Equal(t, 0, e.Active())
}

func TestFadeOutDeactivatesObject(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	fade := NewFade(e, s, Timing{Duration: 1, Delay: .5})
	fade.Style = FadeOut
	fade.InactiveOnTransparent = true
	fade.RepeatOnDisable = true
	o := NewObject("toast", fade)

	require.NoError(t, o.SetActive(true))
	assert.Equal(t, float32(1), s.alpha)
	fade.Animate()
	run(e, .25, 4)
	assert.InDelta(t, .5, s.alpha, 1e-4, "delay honoured")
	assert.True(t, o.Active())
	run(e, .25, 2)
	assert.False(t, o.Active())
	assert.Equal(t, float32(1), s.alpha, "repeat on disable restores the starting alpha")
	assert.Equal(t, FadeOut, fade.Style)
}

func TestFadeLoopPingPong(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	fade := NewFade(e, s, Timing{Duration: 1, Loop: true, StartOnEnable: true})
	fade.MinAlpha, fade.MaxAlpha = .2, .8
	o := NewObject("glow", fade)

	require.NoError(t, o.SetActive(true))
	run(e, .5, 2)
	assert.InDelta(t, .8, s.alpha, 1e-4)
	run(e, .5, 2)
	assert.InDelta(t, .2, s.alpha, 1e-4)

	require.NoError(t, o.SetActive(false))
	before := s.alpha
	run(e, .5, 3)
	assert.Equal(t, before, s.alpha, "stopped fades stay put")
	assert.Equal(t, 0, e.Active())
}

func TestFadeLoopRandomDelay(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	fade := NewFade(e, s, Timing{Duration: 1, Loop: true, StartOnEnable: true})
	fade.RandomDelay = [2]float32{.5, .5}
	o := NewObject("blink", fade)

	require.NoError(t, o.SetActive(true))
	run(e, .5, 2)
	assert.Equal(t, float32(1), s.alpha)
	e.Update(.5)
	assert.Equal(t, float32(1), s.alpha, "pausing")
	e.Update(.5)
	assert.InDelta(t, .5, s.alpha, 1e-4, "fading back out")
	run(e, .5, 1)
	assert.Equal(t, float32(0), s.alpha)
}

func TestFadeToAndReset(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	fade := NewFade(e, s, Timing{Duration: 1})
	o := NewObject("group", fade)
	require.NoError(t, o.SetActive(true))

	fade.FadeTo(true)
	run(e, .5, 2)
	assert.Equal(t, float32(1), s.alpha)
	assert.Equal(t, FadeIn, fade.Style, "FadeTo leaves the toggle alone")

	fade.FadeOut()
	e.Update(.5)
	fade.Reset()
	assert.Equal(t, float32(0), s.alpha)
	run(e, .5, 2)
	assert.Equal(t, float32(0), s.alpha)
}

func TestFill(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	s.fill = .25
	fill := NewFill(e, s, Timing{Duration: 1})
	o := NewObject("bar", fill)
	require.NoError(t, o.SetActive(true))

	fill.Animate()
	e.Update(.5)
	assert.InDelta(t, .625, s.fill, 1e-4)
	e.Update(.5)
	assert.Equal(t, float32(1), s.fill)

	fill.Animate()
	run(e, .5, 2)
	assert.Equal(t, float32(0), s.fill)

	fill.FillIn()
	run(e, .5, 2)
	assert.Equal(t, float32(1), s.fill)

	require.NoError(t, o.SetActive(false))
	require.NoError(t, o.SetActive(true))
	assert.Equal(t, float32(.25), s.fill, "activation restores the fill captured at init")

	fill.FillOut()
	run(e, .5, 2)
	assert.Equal(t, float32(0), s.fill)
}

func TestRotate(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	rot := NewRotate(e, s, Timing{Duration: 1, StartOnEnable: true})
	rot.StartRotation, rot.EndRotation = 10, 90
	finished := 0
	rot.OnFinished = func() { finished++ }
	o := NewObject("arrow", rot)

	require.NoError(t, o.SetActive(true))
	assert.Equal(t, float32(10), s.rotation)
	run(e, .5, 2)
	assert.Equal(t, float32(90), s.rotation)
	assert.Equal(t, 1, finished)

	rot.Animate()
	run(e, .5, 2)
	assert.Equal(t, float32(10), s.rotation)
	assert.Equal(t, 2, finished)

	rot.Rotate(true)
	run(e, .5, 2)
	assert.Equal(t, float32(90), s.rotation)

	rot.RotateTo(45, .5)
	e.Update(.5)
	assert.Equal(t, float32(45), s.rotation)
	assert.Equal(t, 4, finished)

	rot.RotateTo(0, 0)
	e.Update(.5)
	rot.Reset()
	run(e, .5, 2)
	assert.InDelta(t, 22.5, s.rotation, 1e-3, "reset cancels mid-way")
}

func TestRotateLoop(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	rot := NewRotate(e, s, Timing{Duration: 1, Loop: true, StartOnEnable: true})
	rot.EndRotation = 180
	o := NewObject("spinner", rot)
	require.NoError(t, o.SetActive(true))

	run(e, .5, 2)
	assert.Equal(t, float32(180), s.rotation)
	run(e, .5, 2)
	assert.Equal(t, float32(0), s.rotation)
	assert.Equal(t, 1, e.Active())
}

func TestScaleLoopChains(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	sc := NewScale(e, s, model.Vec3(2, 2, 1), Timing{Duration: 1, Loop: true, StartOnEnable: true})
	sc.RepeatOnDisable = true
	o := NewObject("pulse", sc)

	require.NoError(t, o.SetActive(true))
	run(e, .5, 2)
	assert.Equal(t, model.Vec3(2, 2, 1), s.scale)
	run(e, .5, 2)
	assert.Equal(t, model.Vec3(1, 1, 1), s.scale)
	e.Update(.5)
	assert.True(t, s.scale.Equal(model.Vec3(1.5, 1.5, 1), 1e-4), "got %v", s.scale)

	require.NoError(t, o.SetActive(false))
	assert.Equal(t, model.Vec3(1, 1, 1), s.scale)
	assert.Equal(t, 0, e.Active())
}

func TestScaleTo(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	sc := NewScale(e, s, model.Vec3(2, 2, 2), Timing{Duration: 1})
	o := NewObject("card", sc)
	require.NoError(t, o.SetActive(true))

	done := false
	sc.ScaleTo(model.Vec3(3, 3, 3), .5, func() { done = true })
	e.Update(.5)
	assert.Equal(t, model.Vec3(1, 1, 1), s.scale)
	e.Update(1)
	assert.Equal(t, model.Vec3(3, 3, 3), s.scale)
	assert.True(t, done)
}

func TestMove(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	found := 0
	var arrived []int
	mv := NewMove(e, s, model.Vec3(100, 100, 0), []model.Step{
		{Target: model.Vec3(0, 50, 0), Duration: 1},
		{Target: model.Vec3(50, 50, 0), Duration: 1, Delay: .5, CallbackAtArrival: true,
			Callback: func() { arrived = append(arrived, 1) }},
	}, Timing{StartOnEnable: true})
	mv.Relative = true
	mv.OnTargetFound = func() { found++ }
	o := NewObject("marker", mv)

	require.NoError(t, o.SetActive(true))
	assert.Equal(t, 1, found)
	assert.Equal(t, model.Vec3(100, 100, 0), s.pos)
	assert.True(t, mv.Playing())

	run(e, .5, 2)
	assert.Equal(t, model.Vec3(100, 150, 0), s.pos)
	run(e, .5, 3)
	assert.Equal(t, model.Vec3(150, 150, 0), s.pos)
	assert.Equal(t, []int{1}, arrived)
	assert.False(t, mv.Playing())

	require.NoError(t, o.SetActive(false))
	assert.Equal(t, model.Vec3(100, 100, 0), s.pos, "disable snaps back to the start")

	require.NoError(t, o.SetActive(true))
	assert.Equal(t, 2, found)
	assert.Equal(t, model.Vec3(100, 150, 0), mv.Sequencer().Sequence().Steps[0].Target,
		"relative offset applied once")
}

func TestMoveObjectSingleStep(t *testing.T) {
	e := tween.NewEngine()
	s := newSprite()
	mv := NewMove(e, s, model.Vec3(0, 0, 0), []model.Step{
		{Target: model.Vec3(10, 0, 0), Duration: 1},
		{Target: model.Vec3(10, 10, 0), Duration: 1},
	}, Timing{})
	o := NewObject("cursor", mv)
	require.NoError(t, o.SetActive(true))
	assert.False(t, mv.Playing())

	var settled []int
	mv.MoveObject(1, func(i int) { settled = append(settled, i) })
	run(e, .5, 2)
	assert.Equal(t, model.Vec3(10, 10, 0), s.pos)
	assert.Equal(t, []int{1}, settled)

	pb := mv.MoveObject(2, nil)
	assert.True(t, pb.Done())
}
