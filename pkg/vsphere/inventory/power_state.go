package inventory

import (
	"context"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/spec"
)

const (
	summaryProperty  = "summary"
	summaryNamePath  = "config.name"
	summaryPowerPath = "runtime.powerState"
)

/*
PowerState is the name and power state of one virtual machine.
*/
type PowerState struct {
	Ref        mo.Reference
	Name       string
	PowerState string
}

/*
PowerStatesInContainer returns the name and power state of every virtual
machine under container. An empty container yields an empty slice.
*/
func (e *Engine) PowerStatesInContainer(ctx context.Context, container mo.Reference) ([]PowerState, error) {
	objects, err := e.ListByTypeAndProperties(ctx, container, mo.TypeVirtualMachine, spec.Paths(summaryProperty))
	if nil != err {
		return nil, err
	}

	states := make([]PowerState, 0, len(objects))
	for _, obj := range objects {
		summary := obj.Props[summaryProperty]
		state := PowerState{Ref: obj.Ref}
		if v, ok := lookupPath(summary, summaryNamePath); ok {
			state.Name, _ = stringValue(v)
		}
		if v, ok := lookupPath(summary, summaryPowerPath); ok {
			state.PowerState, _ = stringValue(v)
		}
		states = append(states, state)
	}
	return states, nil
}
