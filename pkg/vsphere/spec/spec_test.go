package spec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/spec"
)

func TestBuildPropertySpec(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name   string
		sel    spec.Selection
		expect spec.PropertySpec
		err    error
	}{
		{
			name:   "zero value selects all",
			sel:    spec.Selection{},
			expect: spec.PropertySpec{Type: "VirtualMachine", All: true},
		},
		{
			name:   "all",
			sel:    spec.All(),
			expect: spec.PropertySpec{Type: "VirtualMachine", All: true},
		},
		{
			name:   "single name",
			sel:    spec.Paths("name"),
			expect: spec.PropertySpec{Type: "VirtualMachine", PathSet: []string{"name"}},
		},
		{
			name: "ordered set",
			sel:  spec.Paths("summary", "config.name", "runtime.powerState"),
			expect: spec.PropertySpec{
				Type:    "VirtualMachine",
				PathSet: []string{"summary", "config.name", "runtime.powerState"},
			},
		},
		{
			name: "explicit empty set",
			sel:  spec.Paths(),
			err:  vserrors.ErrInvalidSelection,
		},
	}

	for _, test := range tests {
		got, err := spec.BuildPropertySpec(mo.TypeVirtualMachine, test.sel)
		if nil != test.err {
			assert.True(errors.Is(err, test.err), test.name)
			continue
		}
		assert.NoError(err, test.name)
		assert.Equal(test.expect, got, test.name)
	}
}

func TestSelectionPathSetIsCopied(t *testing.T) {
	paths := []string{"name"}
	sel := spec.Paths(paths...)
	paths[0] = "changed"

	got := sel.PathSet()
	assert.Equal(t, []string{"name"}, got)
	got[0] = "changed again"
	assert.Equal(t, []string{"name"}, sel.PathSet())
}

func TestContainerTraversalObjectSpec(t *testing.T) {
	assert := assert.New(t)

	view := mo.NewReference(mo.TypeContainerView, "session[1]view")
	os := spec.ContainerTraversalObjectSpec(view)

	assert.Equal(view, os.Obj)
	assert.True(os.Skip)
	require.Len(t, os.SelectSet, 1)
	assert.Equal("ContainerView", os.SelectSet[0].Type)
	assert.Equal("view", os.SelectSet[0].Path)
	assert.False(os.SelectSet[0].Skip)
	assert.NoError(os.Validate())
}

func TestSingleObjectSpec(t *testing.T) {
	assert := assert.New(t)

	ref := mo.NewReference(mo.TypeTask, "task-12")
	os := spec.SingleObjectSpec(ref)

	assert.Equal(ref, os.Obj)
	assert.False(os.Skip)
	assert.Empty(os.SelectSet)
}

func TestBuildFilterSpec(t *testing.T) {
	assert := assert.New(t)

	props := []spec.PropertySpec{{Type: "VirtualMachine", PathSet: []string{"name"}}}
	objs := []spec.ObjectSpec{spec.SingleObjectSpec(mo.NewReference("VirtualMachine", "vm-1"))}

	_, err := spec.BuildFilterSpec(nil, objs)
	assert.True(errors.Is(err, vserrors.ErrEmptyFilter))

	_, err = spec.BuildFilterSpec(props, []spec.ObjectSpec{})
	assert.True(errors.Is(err, vserrors.ErrEmptyFilter))

	fs, err := spec.BuildFilterSpec(props, objs)
	require.NoError(t, err)
	assert.Equal(props, fs.PropSet)
	assert.Equal(objs, fs.ObjectSet)
	assert.False(fs.ReportMissingObjectsInResults)
	assert.NoError(fs.Validate())
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name string
		spec interface{ Validate() error }
		err  error
	}{
		{
			name: "unknown property spec type",
			spec: spec.PropertySpec{Type: "Pod", All: true},
			err:  vserrors.ErrInvalidSpec,
		},
		{
			name: "all and path set",
			spec: spec.PropertySpec{Type: "VirtualMachine", All: true, PathSet: []string{"name"}},
			err:  vserrors.ErrInvalidSpec,
		},
		{
			name: "no selection",
			spec: spec.PropertySpec{Type: "VirtualMachine"},
			err:  vserrors.ErrInvalidSpec,
		},
		{
			name: "empty path",
			spec: spec.PropertySpec{Type: "VirtualMachine", PathSet: []string{""}},
			err:  vserrors.ErrInvalidSpec,
		},
		{
			name: "unknown traversal type",
			spec: spec.TraversalSpec{Type: "Deployment", Path: "view"},
			err:  vserrors.ErrInvalidSpec,
		},
		{
			name: "zero object",
			spec: spec.ObjectSpec{},
			err:  vserrors.ErrInvalidSpec,
		},
		{
			name: "empty filter",
			spec: spec.PropertyFilterSpec{},
			err:  vserrors.ErrEmptyFilter,
		},
		{
			name: "valid property spec",
			spec: spec.PropertySpec{Type: "Task", PathSet: []string{"info.state", "info.error"}},
		},
	}

	for _, test := range tests {
		err := test.spec.Validate()
		if nil == test.err {
			assert.NoError(err, test.name)
			continue
		}
		assert.True(errors.Is(err, test.err), test.name)
	}
}
