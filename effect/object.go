// Package effect holds the UI animation components: fade, fill, rotate, scale and move.
// Each one is attached to an Object whose activation drives the Init/Start/Stop lifecycle.
package effect

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrMissingTarget = errors.New("missing target")

type Effect interface {
	// Init runs once, on the first activation of the owning object.
	Init() error
	// Start runs on every activation.
	Start()
	// Stop runs on every deactivation and cancels whatever the effect has running.
	Stop()
	Animate()
}

type binder interface {
	bind(o *Object)
}

// Object owns a set of effects and switches them on and off together.
type Object struct {
	Name    string
	active  bool
	awake   bool
	effects []Effect
	log     *log.Entry
}

func NewObject(name string, effects ...Effect) *Object {
	o := &Object{
		Name:    name,
		effects: make([]Effect, 0, len(effects)),
		log:     log.WithFields(log.Fields{"component": "object", "object": name}),
	}
	for _, e := range effects {
		o.attach(e)
		o.effects = append(o.effects, e)
	}
	return o
}

// Add attaches effects. An object that was activated before initialises them
// right away, and starts them too while it is active.
func (o *Object) Add(effects ...Effect) error {
	for _, e := range effects {
		o.attach(e)
		if o.awake {
			if err := e.Init(); err != nil {
				return fmt.Errorf("object %q effect %d: %w", o.Name, len(o.effects), err)
			}
		}
		o.effects = append(o.effects, e)
		if o.active {
			e.Start()
		}
	}
	return nil
}

func (o *Object) attach(e Effect) {
	if b, ok := e.(binder); ok {
		b.bind(o)
	}
}

func (o *Object) Effects() []Effect {
	return o.effects
}

func (o *Object) Active() bool {
	return o.active
}

// SetActive initialises the effects on the first activation, then starts or stops them.
// An Init failure leaves the object inactive.
func (o *Object) SetActive(active bool) error {
	if active == o.active {
		return nil
	}
	if !active {
		o.log.Debug("deactivating")
		o.active = false
		for _, e := range o.effects {
			e.Stop()
		}
		return nil
	}
	if !o.awake {
		for i, e := range o.effects {
			if err := e.Init(); err != nil {
				return fmt.Errorf("object %q effect %d: %w", o.Name, i, err)
			}
		}
		o.awake = true
	}
	o.log.Debug("activating")
	o.active = true
	for _, e := range o.effects {
		e.Start()
	}
	return nil
}
