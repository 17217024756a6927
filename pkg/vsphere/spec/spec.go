/*
Package spec builds the property collector specifications that describe which
managed objects, and which of their properties, to retrieve or watch.

All functions are pure: they never touch the network and report misuse as a
local error.
*/
package spec

import (
	"github.com/mkenney/vsphere/internal/codes"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
)

const (
	// ContainerViewTraversalName names the fixed traversal through a
	// container view.
	ContainerViewTraversalName = "traverseEntities"
	// ContainerViewPath is the container view property holding its members.
	ContainerViewPath = "view"
)

/*
PropertySpec selects properties of objects of one type. Exactly one of All or
a non-empty PathSet is in effect.
*/
type PropertySpec struct {
	Type    string
	All     bool
	PathSet []string
}

/*
TraversalSpec describes how to step from one object to related objects.
*/
type TraversalSpec struct {
	Name string
	Type string
	Path string
	Skip bool
}

/*
ObjectSpec names the starting object of a filter and, optionally, how to
traverse from it.
*/
type ObjectSpec struct {
	Obj       mo.Reference
	Skip      bool
	SelectSet []TraversalSpec
}

/*
PropertyFilterSpec is the unit submitted to the property collector to retrieve
or watch properties.
*/
type PropertyFilterSpec struct {
	PropSet                       []PropertySpec
	ObjectSet                     []ObjectSpec
	ReportMissingObjectsInResults bool
}

/*
Selection is the set of properties a query asks for. The zero value selects
all properties.
*/
type Selection struct {
	paths    []string
	explicit bool
}

/*
All selects every property.
*/
func All() Selection {
	return Selection{}
}

/*
Paths selects an explicit, ordered set of property paths.
*/
func Paths(paths ...string) Selection {
	return Selection{paths: append([]string(nil), paths...), explicit: true}
}

/*
IsAll reports whether s selects every property.
*/
func (s Selection) IsAll() bool {
	return !s.explicit
}

/*
PathSet returns a copy of the explicitly selected paths.
*/
func (s Selection) PathSet() []string {
	return append([]string(nil), s.paths...)
}

/*
BuildPropertySpec returns a PropertySpec of typ for sel. An explicit but empty
selection fails with ErrInvalidSelection.
*/
func BuildPropertySpec(typ string, sel Selection) (PropertySpec, error) {
	if sel.IsAll() {
		return PropertySpec{Type: typ, All: true}, nil
	}
	if 0 == len(sel.paths) {
		return PropertySpec{}, vserrors.New(codes.ErrInvalidSelection, "BuildPropertySpec", "type %s", typ)
	}
	return PropertySpec{Type: typ, PathSet: sel.PathSet()}, nil
}

/*
ContainerViewTraversal returns the fixed traversal through a container view's
members.
*/
func ContainerViewTraversal() TraversalSpec {
	return TraversalSpec{
		Name: ContainerViewTraversalName,
		Type: mo.TypeContainerView,
		Path: ContainerViewPath,
		Skip: false,
	}
}

/*
ContainerTraversalObjectSpec returns an ObjectSpec that starts at view, skips
the view itself and traverses into its members.
*/
func ContainerTraversalObjectSpec(view mo.Reference) ObjectSpec {
	return ObjectSpec{
		Obj:       view,
		Skip:      true,
		SelectSet: []TraversalSpec{ContainerViewTraversal()},
	}
}

/*
SingleObjectSpec returns an ObjectSpec targeting ref alone.
*/
func SingleObjectSpec(ref mo.Reference) ObjectSpec {
	return ObjectSpec{Obj: ref}
}

/*
BuildFilterSpec combines property and object specs into a filter spec. Both
sets must be non-empty.
*/
func BuildFilterSpec(props []PropertySpec, objs []ObjectSpec) (PropertyFilterSpec, error) {
	if 0 == len(props) || 0 == len(objs) {
		return PropertyFilterSpec{}, vserrors.New(
			codes.ErrEmptyFilter,
			"BuildFilterSpec",
			"%d property specs, %d object specs", len(props), len(objs),
		)
	}
	return PropertyFilterSpec{
		PropSet:   props,
		ObjectSet: objs,
	}, nil
}
