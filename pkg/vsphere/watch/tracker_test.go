package watch

import (
	"context"
	"testing"

	"github.com/bdlm/log"
	"github.com/stretchr/testify/assert"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
)

var task = mo.NewReference(mo.TypeTask, "task-7")

type taskState string

func changes(kind rpc.ObjectUpdateKind, changes ...rpc.PropertyChange) rpc.UpdateSet {
	return rpc.UpdateSet{
		Version: "1",
		FilterSet: []rpc.PropertyFilterUpdate{{
			Filter:    mo.NewReference(mo.TypePropertyFilter, "filter-1"),
			ObjectSet: []rpc.ObjectUpdate{{Kind: kind, Obj: task, ChangeSet: changes}},
		}},
	}
}

func newTaskTracker() *tracker {
	return newTracker(
		[]string{"info.state", "info.error"},
		[]string{"state"},
		[]interface{}{"success", "error"},
	)
}

func TestTrackerApply(t *testing.T) {
	tests := []struct {
		name    string
		sets    []rpc.UpdateSet
		reached bool
		result  Result
	}{
		{
			name:    "no updates",
			sets:    []rpc.UpdateSet{{Version: "1"}, {Version: "1"}, {Version: "1"}},
			reached: false,
			result:  Result{},
		},
		{
			name: "running",
			sets: []rpc.UpdateSet{
				changes(rpc.ObjectUpdateModify, rpc.PropertyChange{Name: "info.state", Op: rpc.ChangeOpModify, Val: "running"}),
			},
			reached: false,
			result:  Result{"info.state": "running"},
		},
		{
			name: "latest value wins",
			sets: []rpc.UpdateSet{
				changes(rpc.ObjectUpdateEnter, rpc.PropertyChange{Name: "info.state", Op: rpc.ChangeOpAdd, Val: "queued"}),
				changes(rpc.ObjectUpdateModify, rpc.PropertyChange{Name: "info.state", Op: rpc.ChangeOpModify, Val: "running"}),
				changes(rpc.ObjectUpdateModify, rpc.PropertyChange{Name: "info.state", Op: rpc.ChangeOpModify, Val: "success"}),
			},
			reached: true,
			result:  Result{"info.state": "success"},
		},
		{
			name: "named string kinds compare as strings",
			sets: []rpc.UpdateSet{
				changes(rpc.ObjectUpdateModify, rpc.PropertyChange{Name: "info.state", Op: rpc.ChangeOpModify, Val: taskState("error")}),
			},
			reached: true,
			result:  Result{"info.state": taskState("error")},
		},
		{
			name: "removal is recorded as empty",
			sets: []rpc.UpdateSet{
				changes(rpc.ObjectUpdateModify,
					rpc.PropertyChange{Name: "info.state", Op: rpc.ChangeOpModify, Val: "running"},
					rpc.PropertyChange{Name: "info.error", Op: rpc.ChangeOpRemove},
				),
			},
			reached: false,
			result:  Result{"info.state": "running", "info.error": ""},
		},
		{
			name: "unrelated properties are ignored",
			sets: []rpc.UpdateSet{
				changes(rpc.ObjectUpdateModify, rpc.PropertyChange{Name: "info.progress", Op: rpc.ChangeOpModify, Val: 50}),
			},
			reached: false,
			result:  Result{},
		},
		{
			name: "unknown update kinds are ignored",
			sets: []rpc.UpdateSet{
				changes(rpc.ObjectUpdateKind("gone"), rpc.PropertyChange{Name: "info.state", Op: rpc.ChangeOpModify, Val: "success"}),
			},
			reached: false,
			result:  Result{},
		},
		{
			name: "leave counts",
			sets: []rpc.UpdateSet{
				changes(rpc.ObjectUpdateLeave, rpc.PropertyChange{Name: "info.state", Op: rpc.ChangeOpModify, Val: "success"}),
			},
			reached: true,
			result:  Result{"info.state": "success"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert := assert.New(t)
			tr := newTaskTracker()
			for _, set := range test.sets {
				tr.apply(set)
			}
			assert.Equal(test.reached, tr.reached())
			assert.Equal(test.result, tr.result())
		})
	}
}

func TestTrackerRemovalResolvesOnEmptyExpectation(t *testing.T) {
	tr := newTracker([]string{"info.error"}, []string{"info.error"}, []interface{}{""})
	tr.apply(changes(rpc.ObjectUpdateModify, rpc.PropertyChange{Name: "info.error", Op: rpc.ChangeOpRemove}))
	assert.True(t, tr.reached())
}

func TestTrackerSubstringMatch(t *testing.T) {
	assert := assert.New(t)
	tr := newTracker([]string{"runtime"}, []string{"powerState"}, []interface{}{"poweredOn"})
	tr.apply(changes(rpc.ObjectUpdateModify,
		rpc.PropertyChange{Name: "runtime.powerState", Op: rpc.ChangeOpModify, Val: "poweredOn"},
	))
	assert.True(tr.reached())
	assert.Equal(Result{"runtime": "poweredOn"}, tr.result())
}

func TestTrackerResultIsACopy(t *testing.T) {
	tr := newTaskTracker()
	tr.apply(changes(rpc.ObjectUpdateModify, rpc.PropertyChange{Name: "info.state", Op: rpc.ChangeOpModify, Val: "running"}))
	res := tr.result()
	res["info.state"] = "tampered"
	assert.Equal(t, "running", tr.result()["info.state"])
}

func TestMachine(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	logger := log.WithField("test", t.Name())

	m := newMachine(logger)
	assert.Equal(StateOpening, m.Current())
	assert.NoError(m.Event(ctx, EventOpened))
	assert.Equal(StateCreatingFilter, m.Current())
	assert.NoError(m.Event(ctx, EventFilterCreated))
	assert.Equal(StatePolling, m.Current())
	assert.NoError(m.Event(ctx, EventResolve))
	assert.Equal(StateResolved, m.Current())

	for _, event := range []string{EventOpened, EventFilterCreated, EventResolve, EventFail} {
		assert.Error(m.Event(ctx, event))
		assert.Equal(StateResolved, m.Current())
	}

	m = newMachine(logger)
	assert.NoError(m.Event(ctx, EventFail))
	assert.Equal(StateFailed, m.Current())
	for _, event := range []string{EventOpened, EventFilterCreated, EventResolve, EventFail} {
		assert.Error(m.Event(ctx, event))
		assert.Equal(StateFailed, m.Current())
	}

	m = newMachine(logger)
	assert.Error(m.Event(ctx, EventResolve))
	assert.Equal(StateOpening, m.Current())
}
