package spec

import (
	"fmt"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/mkenney/vsphere/internal/codes"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
)

/*
Validate checks p against the managed object catalog and the all/path-set
invariant.
*/
func (p PropertySpec) Validate() error {
	var problems []error
	if !mo.Known(p.Type) {
		problems = append(problems, fmt.Errorf("property spec type %q is not a known managed object type", p.Type))
	}
	if p.All && len(p.PathSet) > 0 {
		problems = append(problems, fmt.Errorf("property spec for %s sets both all and a path set", p.Type))
	}
	if !p.All && 0 == len(p.PathSet) {
		problems = append(problems, fmt.Errorf("property spec for %s selects no properties", p.Type))
	}
	for _, path := range p.PathSet {
		if "" == path {
			problems = append(problems, fmt.Errorf("property spec for %s has an empty path", p.Type))
		}
	}
	return invalid("PropertySpec", problems)
}

/*
Validate checks t against the managed object catalog.
*/
func (t TraversalSpec) Validate() error {
	var problems []error
	if !mo.Known(t.Type) {
		problems = append(problems, fmt.Errorf("traversal spec type %q is not a known managed object type", t.Type))
	}
	if "" == t.Path {
		problems = append(problems, fmt.Errorf("traversal spec %q has no path", t.Name))
	}
	return invalid("TraversalSpec", problems)
}

/*
Validate checks that o names an object and that its traversals are valid.
*/
func (o ObjectSpec) Validate() error {
	var problems []error
	if o.Obj.IsZero() {
		problems = append(problems, fmt.Errorf("object spec has no object"))
	}
	for _, ts := range o.SelectSet {
		if err := ts.Validate(); nil != err {
			problems = append(problems, err)
		}
	}
	return invalid("ObjectSpec", problems)
}

/*
Validate checks that f has at least one property and one object spec and that
every member is valid.
*/
func (f PropertyFilterSpec) Validate() error {
	if 0 == len(f.PropSet) || 0 == len(f.ObjectSet) {
		return vserrors.New(codes.ErrEmptyFilter, "PropertyFilterSpec", "")
	}
	var problems []error
	for _, ps := range f.PropSet {
		if err := ps.Validate(); nil != err {
			problems = append(problems, err)
		}
	}
	for _, os := range f.ObjectSet {
		if err := os.Validate(); nil != err {
			problems = append(problems, err)
		}
	}
	return invalid("PropertyFilterSpec", problems)
}

func invalid(op string, problems []error) error {
	agg := utilerrors.NewAggregate(problems)
	if nil == agg {
		return nil
	}
	return vserrors.Wrap(agg, codes.ErrInvalidSpec, op, nil)
}
