// Package config reads scene files: named sequences and the effects that use them.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tanema/gween/ease"
	"github.com/zucenko/tweenseq/model"
	"github.com/zucenko/tweenseq/tween"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrUnknownSequence = errors.New("unknown sequence")
)

// Scene is the root of a scene file.
type Scene struct {
	Sequences []SequenceConfig `yaml:"sequences"`
	Effects   []EffectConfig   `yaml:"effects"`
}

type SequenceConfig struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind"` // scalar, vector or color
	Easing   string       `yaml:"easing"`
	Loop     bool         `yaml:"loop"`
	Relative bool         `yaml:"relative"`
	Start    []float32    `yaml:"start"`
	Steps    []StepConfig `yaml:"steps"`
}

type StepConfig struct {
	Target            []float32 `yaml:"target"`
	Duration          float32   `yaml:"duration"`
	Delay             float32   `yaml:"delay"`
	CallbackAtArrival bool      `yaml:"callbackAtArrival"`
	Event             string    `yaml:"event"`
}

type EffectConfig struct {
	Name          string  `yaml:"name"`
	Type          string  `yaml:"type"` // fade, fill, rotate, scale or move
	Easing        string  `yaml:"easing"`
	Duration      float32 `yaml:"duration"`
	Delay         float32 `yaml:"delay"`
	StartOnEnable bool    `yaml:"startOnEnable"`
	FirstTimeOnly bool    `yaml:"firstTimeOnly"`
	Loop          bool    `yaml:"loop"`

	// fade and fill
	Style                 string    `yaml:"style"`
	MinAlpha              *float32  `yaml:"minAlpha"`
	MaxAlpha              *float32  `yaml:"maxAlpha"`
	RepeatOnDisable       bool      `yaml:"repeatOnDisable"`
	InactiveOnTransparent bool      `yaml:"inactiveOnTransparent"`
	RandomDelay           []float32 `yaml:"randomDelay"`

	// rotate
	StartRotation float32 `yaml:"startRotation"`
	EndRotation   float32 `yaml:"endRotation"`

	// scale
	EndScale []float32 `yaml:"endScale"`

	// move
	Sequence string `yaml:"sequence"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read decodes and validates a scene.
func Read(reader io.Reader) (*Scene, error) {
	var scene Scene
	if err := yaml.NewDecoder(reader).Decode(&scene); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse scene YAML: %w", err)
	}
	if err := scene.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &scene, nil
}

func (s *Scene) validate() error {
	names := make(map[string]bool)
	for _, sc := range s.Sequences {
		if sc.Name == "" {
			return fmt.Errorf("sequence name cannot be empty")
		}
		if names[sc.Name] {
			return fmt.Errorf("duplicate sequence %q", sc.Name)
		}
		names[sc.Name] = true
		if _, err := sc.Build(nil); err != nil {
			return err
		}
	}
	effects := make(map[string]bool)
	for _, ec := range s.Effects {
		if ec.Name == "" {
			return fmt.Errorf("effect name cannot be empty")
		}
		if effects[ec.Name] {
			return fmt.Errorf("duplicate effect %q", ec.Name)
		}
		effects[ec.Name] = true
		if err := ec.validate(); err != nil {
			return fmt.Errorf("effect %q: %v", ec.Name, err)
		}
		if ec.Type == "move" && !names[ec.Sequence] {
			return fmt.Errorf("effect %q: %w %q", ec.Name, ErrUnknownSequence, ec.Sequence)
		}
	}
	return nil
}

func (s *Scene) SequenceNames() []string {
	names := make([]string, 0, len(s.Sequences))
	for _, sc := range s.Sequences {
		names = append(names, sc.Name)
	}
	return names
}

// FindSequence returns the named sequence configuration.
func (s *Scene) FindSequence(name string) (SequenceConfig, error) {
	for _, sc := range s.Sequences {
		if sc.Name == name {
			return sc, nil
		}
	}
	return SequenceConfig{}, fmt.Errorf("%w: %q", ErrUnknownSequence, name)
}

// Built is a sequence ready for tween.NewSequencer.
type Built struct {
	Sequence model.Sequence
	Start    model.Value
	Easing   ease.TweenFunc
}

// Build converts the configuration; events resolves step event names to callbacks and may be nil.
func (sc SequenceConfig) Build(events func(name string) func()) (Built, error) {
	kind, err := ParseKind(sc.Kind)
	if err != nil {
		return Built{}, fmt.Errorf("sequence %q: %v", sc.Name, err)
	}
	easing, err := tween.EasingByName(sc.Easing)
	if err != nil {
		return Built{}, fmt.Errorf("sequence %q: %w", sc.Name, err)
	}
	start := model.Value{Kind: kind}
	if len(sc.Start) > 0 {
		if start, err = ParseValue(kind, sc.Start); err != nil {
			return Built{}, fmt.Errorf("sequence %q start: %v", sc.Name, err)
		}
	}
	seq := model.Sequence{
		Name:     sc.Name,
		Loop:     sc.Loop,
		Relative: sc.Relative,
		Steps:    make([]model.Step, 0, len(sc.Steps)),
	}
	for i, st := range sc.Steps {
		target, err := ParseValue(kind, st.Target)
		if err != nil {
			return Built{}, fmt.Errorf("sequence %q step %d: %v", sc.Name, i, err)
		}
		step := model.Step{
			Target:            target,
			Duration:          st.Duration,
			Delay:             st.Delay,
			CallbackAtArrival: st.CallbackAtArrival,
			Event:             st.Event,
		}
		if st.Event != "" && events != nil {
			step.Callback = events(st.Event)
		}
		seq.Steps = append(seq.Steps, step)
	}
	if err := seq.Validate(); err != nil {
		return Built{}, err
	}
	if seq.Loop && len(seq.Steps) > 0 && seq.TotalDuration() <= 0 {
		return Built{}, fmt.Errorf("sequence %q: %w", sc.Name, tween.ErrZeroLoop)
	}
	return Built{Sequence: seq, Start: start, Easing: easing}, nil
}

func ParseKind(kind string) (model.Kind, error) {
	switch strings.ToLower(kind) {
	case "", "scalar":
		return model.KindScalar, nil
	case "vector":
		return model.KindVector, nil
	case "color":
		return model.KindColor, nil
	default:
		return 0, fmt.Errorf("unknown value kind %q", kind)
	}
}

// ParseValue builds a value of kind from exactly as many numbers as the kind has channels.
func ParseValue(kind model.Kind, vals []float32) (model.Value, error) {
	v := model.Value{Kind: kind}
	if len(vals) != kind.Channels() {
		return v, fmt.Errorf("%s needs %d values, got %d", kind.Name(), kind.Channels(), len(vals))
	}
	copy(v.V[:], vals)
	return v, nil
}
