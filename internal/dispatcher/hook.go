// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dispatcher

import (
	"fmt"

	"github.com/tfctl/rowsync/internal/detector"
	"github.com/tfctl/rowsync/internal/log"
)

// Phase marks where in a dispatch an Event was raised.
type Phase int

const (
	PhaseStart  Phase = iota // Dispatch begins; Count holds the surface size
	PhaseReset               // The surface was empty and got a full reset
	PhaseBefore              // About to notify the surface of Change
	PhaseAfter               // The surface has been notified of Change
	PhaseEnd                 // Dispatch finished
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseReset:
		return "reset"
	case PhaseBefore:
		return "before"
	case PhaseAfter:
		return "after"
	case PhaseEnd:
		return "end"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Event is passed to a Hook. Change is nil except for PhaseBefore and
// PhaseAfter.
type Event struct {
	Phase  Phase
	Change detector.Change
	Count  int
}

func (e Event) String() string {
	if e.Change == nil {
		return fmt.Sprintf("%s count=%d", e.Phase, e.Count)
	}
	return fmt.Sprintf("%s %s", e.Phase, e.Change)
}

// Hook observes a dispatch. It is called synchronously and must not call
// back into the surface.
type Hook func(Event)

// LogHook returns a Hook that writes every event to the debug log.
func LogHook() Hook {
	return func(e Event) {
		log.Debugf("dispatch %s", e)
	}
}

// Hooks fans an event out to several hooks in order. Nil hooks are skipped.
func Hooks(hooks ...Hook) Hook {
	return func(e Event) {
		for _, h := range hooks {
			if h != nil {
				h(e)
			}
		}
	}
}
