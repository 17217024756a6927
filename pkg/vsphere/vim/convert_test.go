package vim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
	"github.com/mkenney/vsphere/pkg/vsphere/spec"
)

func TestToFilterSpec(t *testing.T) {
	assert := assert.New(t)

	view := mo.NewReference(mo.TypeContainerView, "session[52b]view-1")
	fs := toFilterSpec(spec.PropertyFilterSpec{
		PropSet: []spec.PropertySpec{
			{Type: mo.TypeVirtualMachine, PathSet: []string{"name"}},
			{Type: mo.TypeDatacenter, All: true},
		},
		ObjectSet: []spec.ObjectSpec{spec.ContainerTraversalObjectSpec(view)},
	})

	require.Len(t, fs.PropSet, 2)
	assert.Equal([]string{"name"}, fs.PropSet[0].PathSet)
	assert.Nil(fs.PropSet[0].All)
	require.NotNil(t, fs.PropSet[1].All)
	assert.True(*fs.PropSet[1].All)
	assert.Nil(fs.ReportMissingObjectsInResults)

	require.Len(t, fs.ObjectSet, 1)
	obj := fs.ObjectSet[0]
	assert.Equal(types.ManagedObjectReference{Type: "ContainerView", Value: "session[52b]view-1"}, obj.Obj)
	assert.True(*obj.Skip)
	require.Len(t, obj.SelectSet, 1)
	ts, ok := obj.SelectSet[0].(*types.TraversalSpec)
	require.True(t, ok)
	assert.Equal("traverseEntities", ts.Name)
	assert.Equal("ContainerView", ts.Type)
	assert.Equal("view", ts.Path)
	assert.False(*ts.Skip)
}

func TestFromUpdateSet(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(rpc.UpdateSet{Version: "7"}, fromUpdateSet(nil, "7"))

	truncated := true
	set := fromUpdateSet(&types.UpdateSet{
		Version:   "8",
		Truncated: &truncated,
		FilterSet: []types.PropertyFilterUpdate{{
			Filter: types.ManagedObjectReference{Type: "PropertyFilter", Value: "filter-1"},
			ObjectSet: []types.ObjectUpdate{{
				Kind: types.ObjectUpdateKindModify,
				Obj:  types.ManagedObjectReference{Type: "Task", Value: "task-1"},
				ChangeSet: []types.PropertyChange{
					{Name: "info.state", Op: types.PropertyChangeOpAssign, Val: types.TaskInfoStateSuccess},
					{Name: "info.progress", Op: types.PropertyChangeOpAdd, Val: int32(100)},
					{Name: "info.error", Op: types.PropertyChangeOpIndirectRemove},
					{Name: "info.result", Op: types.PropertyChangeOpRemove},
				},
			}},
		}},
	}, "7")

	assert.Equal("8", set.Version)
	assert.True(set.Truncated)
	require.Len(t, set.FilterSet, 1)
	assert.Equal(mo.NewReference(mo.TypePropertyFilter, "filter-1"), set.FilterSet[0].Filter)
	require.Len(t, set.FilterSet[0].ObjectSet, 1)
	ou := set.FilterSet[0].ObjectSet[0]
	assert.Equal(rpc.ObjectUpdateModify, ou.Kind)
	assert.Equal(mo.NewReference(mo.TypeTask, "task-1"), ou.Obj)
	assert.Equal([]rpc.PropertyChange{
		{Name: "info.state", Op: rpc.ChangeOpModify, Val: "success"},
		{Name: "info.progress", Op: rpc.ChangeOpAdd, Val: int32(100)},
		{Name: "info.error", Op: rpc.ChangeOpRemove},
		{Name: "info.result", Op: rpc.ChangeOpRemove},
	}, ou.ChangeSet)
}

func TestFromValue(t *testing.T) {
	tests := []struct {
		name string
		in   types.AnyType
		want interface{}
	}{
		{name: "nil", in: nil, want: nil},
		{name: "enum", in: types.VirtualMachinePowerStatePoweredOn, want: "poweredOn"},
		{name: "string", in: "vm-a", want: "vm-a"},
		{name: "number", in: int32(4), want: int32(4)},
		{
			name: "reference",
			in:   types.ManagedObjectReference{Type: "VirtualMachine", Value: "vm-10"},
			want: mo.NewReference(mo.TypeVirtualMachine, "vm-10"),
		},
		{
			name: "fault message",
			in:   &types.LocalizedMethodFault{Fault: &types.InvalidPowerState{}, LocalizedMessage: "The attempted operation cannot be performed in the current state (Powered on)."},
			want: "The attempted operation cannot be performed in the current state (Powered on).",
		},
		{
			name: "fault type",
			in:   &types.LocalizedMethodFault{Fault: &types.InvalidPowerState{}},
			want: "InvalidPowerState",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, fromValue(test.in))
		})
	}
}
