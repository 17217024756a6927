package power

import (
	"github.com/mkenney/vsphere/internal/codes"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
)

/*
Error reports a power operation in which at least one target failed. It
matches vserrors.ErrPowerOpFailed and carries the outcome of every target.
*/
type Error struct {
	Op       Op
	Outcomes []Outcome
}

/*
Failed returns the failed outcomes.
*/
func (e *Error) Failed() []Outcome {
	failed := []Outcome{}
	for _, outcome := range e.Outcomes {
		if outcome.Failed {
			failed = append(failed, outcome)
		}
	}
	return failed
}

/*
Error implements error.
*/
func (e *Error) Error() string {
	return e.Unwrap().Error()
}

/*
Unwrap returns the coded error describing e.
*/
func (e *Error) Unwrap() error {
	return vserrors.New(
		codes.ErrPowerOpFailed,
		string(e.Op),
		"%d of %d failed",
		len(e.Failed()),
		len(e.Outcomes),
	)
}
