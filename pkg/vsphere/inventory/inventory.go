/*
Package inventory performs one-shot bulk property retrieval over container
views.
*/
package inventory

import (
	"context"
	"time"

	"github.com/bdlm/log"

	"github.com/mkenney/vsphere/internal/codes"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
	"github.com/mkenney/vsphere/pkg/vsphere/spec"
)

// cleanupTimeout bounds DestroyView calls made after the query context is
// done.
const cleanupTimeout = 30 * time.Second

/*
Object is one retrieved managed object and its properties keyed by property
path.
*/
type Object struct {
	Ref   mo.Reference
	Props map[string]interface{}
}

/*
Engine runs inventory queries on a session.
*/
type Engine struct {
	session rpc.Session
}

/*
New returns an Engine using session.
*/
func New(session rpc.Session) *Engine {
	return &Engine{session: session}
}

/*
ListByType returns every object of typ under container with all properties.
*/
func (e *Engine) ListByType(ctx context.Context, container mo.Reference, typ string) ([]Object, error) {
	return e.ListByTypeAndProperties(ctx, container, typ, spec.All())
}

/*
ListByTypeAndProperties returns every object of typ under container,
recursively, with the properties selected by sel.
*/
func (e *Engine) ListByTypeAndProperties(
	ctx context.Context,
	container mo.Reference,
	typ string,
	sel spec.Selection,
) ([]Object, error) {
	return e.query(ctx, "ListByTypeAndProperties", container, typ, sel, spec.ContainerTraversalObjectSpec)
}

/*
GetProperties returns the properties of ref selected by sel. The query runs
through a container view of ref's type rooted at the session's root folder.
*/
func (e *Engine) GetProperties(ctx context.Context, ref mo.Reference, sel spec.Selection) ([]Object, error) {
	root := e.session.ServiceContent().RootFolder
	return e.query(ctx, "GetProperties", root, ref.Type, sel, func(mo.Reference) spec.ObjectSpec {
		return spec.SingleObjectSpec(ref)
	})
}

func (e *Engine) query(
	ctx context.Context,
	op string,
	container mo.Reference,
	typ string,
	sel spec.Selection,
	objectSpec func(view mo.Reference) spec.ObjectSpec,
) ([]Object, error) {
	ps, err := spec.BuildPropertySpec(typ, sel)
	if nil != err {
		return nil, err
	}
	if err := ps.Validate(); nil != err {
		return nil, err
	}

	view, err := e.createView(ctx, container, typ)
	if nil != err {
		return nil, vserrors.Wrap(err, codes.ErrQueryFailed, op, container)
	}
	defer e.destroyView(ctx, view)

	fs, err := spec.BuildFilterSpec([]spec.PropertySpec{ps}, []spec.ObjectSpec{objectSpec(view)})
	if nil != err {
		return nil, err
	}
	if err := fs.Validate(); nil != err {
		return nil, err
	}

	log.WithFields(log.Fields{
		"op":        op,
		"container": container.String(),
		"type":      typ,
		"view":      view.String(),
	}).Debug("retrieving properties")

	var result rpc.RetrieveResult
	err = e.session.Invoke(ctx, rpc.RetrievePropertiesEx, &rpc.RetrievePropertiesArgs{
		This:    e.session.ServiceContent().PropertyCollector,
		SpecSet: []spec.PropertyFilterSpec{fs},
	}, &result)
	if nil != err {
		return nil, vserrors.Wrap(err, codes.ErrQueryFailed, op, container)
	}

	objects := make([]Object, 0, len(result.Objects))
	for _, oc := range result.Objects {
		props := make(map[string]interface{}, len(oc.PropSet))
		for _, dp := range oc.PropSet {
			props[dp.Name] = dp.Val
		}
		objects = append(objects, Object{Ref: oc.Obj, Props: props})
	}
	return objects, nil
}

func (e *Engine) createView(ctx context.Context, container mo.Reference, typ string) (mo.Reference, error) {
	var view mo.Reference
	err := e.session.Invoke(ctx, rpc.CreateContainerView, &rpc.CreateContainerViewArgs{
		This:      e.session.ServiceContent().ViewManager,
		Container: container,
		Type:      []string{typ},
		Recursive: true,
	}, &view)
	return view, err
}

func (e *Engine) destroyView(ctx context.Context, view mo.Reference) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	err := e.session.Invoke(ctx, rpc.DestroyView, &rpc.DestroyViewArgs{This: view}, nil)
	if nil != err {
		log.WithFields(log.Fields{
			"view": view.String(),
			"err":  err,
		}).Warn("failed to destroy container view")
	}
}
