package tween

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/tweenseq/model"
)

func run(e *Engine, dt float32, frames int) {
	for i := 0; i < frames; i++ {
		e.Update(dt)
	}
}

func TestEngineAnimateLinear(t *testing.T) {
	e := NewEngine()
	var got model.Value
	completed := 0
	e.Animate(model.Scalar(0), model.Scalar(10), 1, ease.Linear).
		SetOnUpdate(func(v model.Value) { got = v }).
		SetOnComplete(func() { completed++ })

	e.Update(.25)
	assert.InDelta(t, 2.5, got.V[0], 1e-4)
	e.Update(.25)
	assert.InDelta(t, 5, got.V[0], 1e-4)
	assert.Equal(t, 0, completed)

	run(e, .25, 2)
	assert.Equal(t, model.Scalar(10), got)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 0, e.Active())

	// nothing left to fire
	run(e, .25, 4)
	assert.Equal(t, 1, completed)
}

func TestEngineDelay(t *testing.T) {
	e := NewEngine()
	updates := 0
	var got model.Value
	anim := e.Animate(model.Scalar(0), model.Scalar(4), 1, nil).
		SetDelay(.5).
		SetOnUpdate(func(v model.Value) { updates++; got = v })

	e.Update(.25)
	assert.Equal(t, 0, updates, "no updates while delayed")
	e.Update(.5)
	assert.InDelta(t, 1, got.V[0], 1e-4)
	e.Update(.75)
	assert.Equal(t, model.Scalar(4), got)
	assert.True(t, anim.Done())
}

func TestEngineVectorChannels(t *testing.T) {
	e := NewEngine()
	var got model.Value
	e.Animate(model.Vec3(0, 10, 0), model.Vec3(10, 0, 4), 2, ease.Linear).
		SetOnUpdate(func(v model.Value) { got = v })
	e.Update(1)
	assert.True(t, got.Equal(model.Vec3(5, 5, 2), 1e-4), "got %v", got)
	assert.Equal(t, model.KindVector, got.Kind)
}

func TestEngineZeroDurationCompletesSameFrame(t *testing.T) {
	e := NewEngine()
	var got model.Value
	done := false
	e.Animate(model.Scalar(1), model.Scalar(3), 0, nil).
		SetOnUpdate(func(v model.Value) { got = v }).
		SetOnComplete(func() { done = true })
	e.Update(0)
	assert.True(t, done)
	assert.Equal(t, model.Scalar(3), got)
}

func TestEnginePingPong(t *testing.T) {
	e := NewEngine()
	var got model.Value
	completed := false
	anim := e.Animate(model.Scalar(0), model.Scalar(1), 1, ease.Linear).
		SetOnUpdate(func(v model.Value) { got = v }).
		SetOnComplete(func() { completed = true }).
		SetLoopPingPong()

	e.Update(.5)
	assert.InDelta(t, .5, got.V[0], 1e-4)
	e.Update(.5)
	assert.InDelta(t, 1, got.V[0], 1e-4)
	e.Update(.25)
	assert.InDelta(t, .75, got.V[0], 1e-4, "on the way back")
	e.Update(.75)
	assert.InDelta(t, 0, got.V[0], 1e-4)
	e.Update(.25)
	assert.InDelta(t, .25, got.V[0], 1e-4)

	run(e, .5, 20)
	assert.False(t, completed)
	assert.False(t, anim.Done())
	assert.Equal(t, 1, e.Active())

	anim.Cancel()
	assert.Equal(t, 0, e.Active())
}

func TestEngineCancel(t *testing.T) {
	e := NewEngine()
	updates := 0
	completed := false
	anim := e.Animate(model.Scalar(0), model.Scalar(1), 1, nil).
		SetOnUpdate(func(model.Value) { updates++ }).
		SetOnComplete(func() { completed = true })
	e.Update(.25)
	require.Equal(t, 1, updates)

	anim.Cancel()
	run(e, .25, 8)
	assert.Equal(t, 1, updates)
	assert.False(t, completed)
	assert.True(t, anim.Done())
}

func TestEngineAfterOrder(t *testing.T) {
	e := NewEngine()
	var order []string
	var at []float64
	record := func(name string) func() {
		return func() {
			order = append(order, name)
			at = append(at, e.Now())
		}
	}
	e.After(1, record("b"))
	e.After(.5, record("a"))
	e.After(1, record("c"))
	cancelled := e.After(.75, record("x"))
	cancelled.Cancel()

	e.Update(2)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []float64{.5, 1, 1}, at)
	assert.Equal(t, float64(2), e.Now())
}

func TestEngineCallbacksAnchorAtDueTime(t *testing.T) {
	e := NewEngine()
	var fired []float64
	e.After(.5, func() {
		fired = append(fired, e.Now())
		e.After(.25, func() { fired = append(fired, e.Now()) })
	})
	// one long frame covers both callbacks
	e.Update(1)
	assert.Equal(t, []float64{.5, .75}, fired)
}

func TestEngineCancelAll(t *testing.T) {
	e := NewEngine()
	fired := false
	e.After(.5, func() { fired = true })
	e.Animate(model.Scalar(0), model.Scalar(1), 1, nil).SetLoopPingPong()
	assert.Equal(t, 2, e.Active())
	e.CancelAll()
	e.Update(1)
	assert.False(t, fired)
	assert.Equal(t, 0, e.Active())
}

func TestEasingByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: ""},
		{name: "linear"},
		{name: "easeOutQuad"},
		{name: "outQuad"},
		{name: "InOutBounce"},
		{name: "wobble", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := EasingByName(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownEasing)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, 10, f(1, 0, 10, 1), 1e-3)
		})
	}
	assert.Contains(t, EasingNames(), "outquad")
}
