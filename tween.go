package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/tweenseq/tween"
)

// every frame advances the animations by the same step, whatever the real frame time
const frameDt = 0.02

const eventLines = 6

// EventLog keeps the latest step events for the overlay.
type EventLog struct {
	engine *tween.Engine
	lines  []string
}

func (l *EventLog) add(format string, args ...interface{}) {
	line := fmt.Sprintf("%6.2fs ", l.engine.Now()) + fmt.Sprintf(format, args...)
	log.Debug(line)
	l.lines = append(l.lines, line)
	if len(l.lines) > eventLines {
		l.lines = l.lines[len(l.lines)-eventLines:]
	}
}

// Resolver turns step event names into callbacks writing to the log.
func (l *EventLog) Resolver(name string) func() {
	return func() {
		l.add("event %s", name)
	}
}

func (l *EventLog) Settled(index int) {
	l.add("step %d settled", index)
}
