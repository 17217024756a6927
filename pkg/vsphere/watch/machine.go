package watch

import (
	"context"

	"github.com/bdlm/log"
	"github.com/looplab/fsm"
)

// Watch states.
const (
	StateOpening        = "opening"
	StateCreatingFilter = "creating_filter"
	StatePolling        = "polling"
	StateResolved       = "resolved"
	StateFailed         = "failed"
)

// Watch events.
const (
	EventOpened        = "opened"
	EventFilterCreated = "filter_created"
	EventResolve       = "resolve"
	EventFail          = "fail"
)

/*
newMachine returns the state machine of one watch. resolved and failed are
terminal: no event leaves them.
*/
func newMachine(logger *log.Entry) *fsm.FSM {
	return fsm.NewFSM(
		StateOpening,
		fsm.Events{
			{Name: EventOpened, Src: []string{StateOpening}, Dst: StateCreatingFilter},
			{Name: EventFilterCreated, Src: []string{StateCreatingFilter}, Dst: StatePolling},
			{Name: EventResolve, Src: []string{StatePolling}, Dst: StateResolved},
			{Name: EventFail, Src: []string{StateOpening, StateCreatingFilter, StatePolling}, Dst: StateFailed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.WithFields(log.Fields{
					"from":  e.Src,
					"to":    e.Dst,
					"event": e.Event,
				}).Debug("watch state changed")
			},
		},
	)
}
