package model

type ServerMessage struct {
	Setup  []Setup
	Frames []Frame
	Events []StepEvent
}

type Setup struct {
	SessionId string
	Sequence  string
	Steps     int
	Loop      bool
	Start     Value
}

type Frame struct {
	Time  float64
	Step  int
	Value Value
}

type StepEvent struct {
	Time  float64
	Step  int
	Event string
	// Settled is set once the step reached its target, otherwise the event is the step callback.
	Settled bool
}

type ClientCommand int

const (
	CMD_PLAY ClientCommand = iota + 1
	CMD_STOP
)

type ClientMessage struct {
	Command ClientCommand
	// Index of the step to play, -1 for the whole sequence.
	Index int
}
