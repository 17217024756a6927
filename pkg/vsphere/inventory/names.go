package inventory

import (
	"context"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/spec"
)

// NameProperty is the property holding a managed entity's name.
const NameProperty = "name"

/*
ListByTypeAndName returns the objects of typ under container whose name is one
of names, in retrieval order. Names match exactly and case-sensitively. No
match is not an error; a single match is a slice of length one.
*/
func (e *Engine) ListByTypeAndName(
	ctx context.Context,
	container mo.Reference,
	typ string,
	names ...string,
) ([]mo.Reference, error) {
	objects, err := e.ListByTypeAndProperties(ctx, container, typ, spec.Paths(NameProperty))
	if nil != err {
		return nil, err
	}

	want := sets.New[string](names...)
	refs := make([]mo.Reference, 0)
	for _, obj := range objects {
		if name, ok := stringValue(obj.Props[NameProperty]); ok && want.Has(name) {
			refs = append(refs, obj.Ref)
		}
	}
	return refs, nil
}

/*
ResolveNames maps every requested name to the objects of typ under container
carrying it. Every name in names has an entry, empty when nothing matched.
*/
func (e *Engine) ResolveNames(
	ctx context.Context,
	container mo.Reference,
	typ string,
	names []string,
) (map[string][]mo.Reference, error) {
	objects, err := e.ListByTypeAndProperties(ctx, container, typ, spec.Paths(NameProperty))
	if nil != err {
		return nil, err
	}

	matches := make(map[string][]mo.Reference, len(names))
	for _, name := range names {
		matches[name] = nil
	}
	for _, obj := range objects {
		name, ok := stringValue(obj.Props[NameProperty])
		if !ok {
			continue
		}
		if _, wanted := matches[name]; wanted {
			matches[name] = append(matches[name], obj.Ref)
		}
	}
	return matches, nil
}
