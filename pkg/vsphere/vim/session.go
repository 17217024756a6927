package vim

import (
	"context"
	"fmt"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/vim25/methods"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
)

/*
Session is an rpc.Session backed by a logged in govmomi client.
*/
type Session struct {
	client  *govmomi.Client
	content rpc.ServiceContent
}

func newSession(client *govmomi.Client) *Session {
	sc := client.ServiceContent
	content := rpc.ServiceContent{
		RootFolder:        fromRef(sc.RootFolder),
		PropertyCollector: fromRef(sc.PropertyCollector),
	}
	if nil != sc.ViewManager {
		content.ViewManager = fromRef(*sc.ViewManager)
	}
	return &Session{client: client, content: content}
}

/*
ServiceContent implements rpc.Session.
*/
func (s *Session) ServiceContent() rpc.ServiceContent {
	return s.content
}

/*
Close logs the session out.
*/
func (s *Session) Close(ctx context.Context) error {
	return s.client.Logout(ctx)
}

/*
Invoke implements rpc.Session.
*/
func (s *Session) Invoke(ctx context.Context, command string, args interface{}, reply interface{}) error {
	switch command {
	case rpc.CreateContainerView:
		a, err := argsOf[rpc.CreateContainerViewArgs](command, args)
		if nil != err {
			return err
		}
		res, err := methods.CreateContainerView(ctx, s.client.Client, &types.CreateContainerView{
			This:      toRef(a.This),
			Container: toRef(a.Container),
			Type:      a.Type,
			Recursive: a.Recursive,
		})
		if nil != err {
			return err
		}
		return setReply(reply, fromRef(res.Returnval))

	case rpc.DestroyView:
		a, err := argsOf[rpc.DestroyViewArgs](command, args)
		if nil != err {
			return err
		}
		_, err = methods.DestroyView(ctx, s.client.Client, &types.DestroyView{This: toRef(a.This)})
		return err

	case rpc.RetrievePropertiesEx:
		a, err := argsOf[rpc.RetrievePropertiesArgs](command, args)
		if nil != err {
			return err
		}
		result, err := s.retrieve(ctx, a)
		if nil != err {
			return err
		}
		return setReply(reply, result)

	case rpc.CreateFilter:
		a, err := argsOf[rpc.CreateFilterArgs](command, args)
		if nil != err {
			return err
		}
		res, err := methods.CreateFilter(ctx, s.client.Client, &types.CreateFilter{
			This:           toRef(a.This),
			Spec:           toFilterSpec(a.Spec),
			PartialUpdates: a.PartialUpdates,
		})
		if nil != err {
			return err
		}
		return setReply(reply, fromRef(res.Returnval))

	case rpc.WaitForUpdatesEx:
		a, err := argsOf[rpc.WaitForUpdatesArgs](command, args)
		if nil != err {
			return err
		}
		wait := a.Options.MaxWaitSeconds
		res, err := methods.WaitForUpdatesEx(ctx, s.client.Client, &types.WaitForUpdatesEx{
			This:    toRef(a.This),
			Version: a.Version,
			Options: &types.WaitOptions{MaxWaitSeconds: &wait},
		})
		if nil != err {
			return err
		}
		return setReply(reply, fromUpdateSet(res.Returnval, a.Version))

	case rpc.PowerOnVMTask, rpc.PowerOffVMTask, rpc.ResetVMTask, rpc.SuspendVMTask:
		a, err := argsOf[rpc.ObjectArgs](command, args)
		if nil != err {
			return err
		}
		task, err := s.powerTask(ctx, command, toRef(a.This))
		if nil != err {
			return err
		}
		return setReply(reply, fromRef(task))

	case rpc.StandbyGuest, rpc.ShutdownGuest, rpc.RebootGuest:
		a, err := argsOf[rpc.ObjectArgs](command, args)
		if nil != err {
			return err
		}
		return s.guest(ctx, command, toRef(a.This))
	}
	return fmt.Errorf("vim: unsupported command %s", command)
}

// retrieve follows continuation tokens until the whole result is read.
func (s *Session) retrieve(ctx context.Context, a *rpc.RetrievePropertiesArgs) (rpc.RetrieveResult, error) {
	specs := make([]types.PropertyFilterSpec, 0, len(a.SpecSet))
	for _, fs := range a.SpecSet {
		specs = append(specs, toFilterSpec(fs))
	}
	pc := toRef(a.This)

	res, err := methods.RetrievePropertiesEx(ctx, s.client.Client, &types.RetrievePropertiesEx{
		This:    pc,
		SpecSet: specs,
		Options: types.RetrieveOptions{MaxObjects: a.Options.MaxObjects},
	})
	if nil != err {
		return rpc.RetrieveResult{}, err
	}

	result := rpc.RetrieveResult{Objects: []rpc.ObjectContent{}}
	page := res.Returnval
	for nil != page {
		result.Objects = append(result.Objects, fromObjectContents(page.Objects)...)
		if "" == page.Token {
			break
		}
		next, err := methods.ContinueRetrievePropertiesEx(ctx, s.client.Client, &types.ContinueRetrievePropertiesEx{
			This:  pc,
			Token: page.Token,
		})
		if nil != err {
			return rpc.RetrieveResult{}, err
		}
		page = &next.Returnval
	}
	return result, nil
}

func (s *Session) powerTask(ctx context.Context, command string, vm types.ManagedObjectReference) (types.ManagedObjectReference, error) {
	rt := s.client.Client
	switch command {
	case rpc.PowerOnVMTask:
		res, err := methods.PowerOnVM_Task(ctx, rt, &types.PowerOnVM_Task{This: vm})
		if nil != err {
			return types.ManagedObjectReference{}, err
		}
		return res.Returnval, nil
	case rpc.PowerOffVMTask:
		res, err := methods.PowerOffVM_Task(ctx, rt, &types.PowerOffVM_Task{This: vm})
		if nil != err {
			return types.ManagedObjectReference{}, err
		}
		return res.Returnval, nil
	case rpc.ResetVMTask:
		res, err := methods.ResetVM_Task(ctx, rt, &types.ResetVM_Task{This: vm})
		if nil != err {
			return types.ManagedObjectReference{}, err
		}
		return res.Returnval, nil
	default:
		res, err := methods.SuspendVM_Task(ctx, rt, &types.SuspendVM_Task{This: vm})
		if nil != err {
			return types.ManagedObjectReference{}, err
		}
		return res.Returnval, nil
	}
}

func (s *Session) guest(ctx context.Context, command string, vm types.ManagedObjectReference) error {
	rt := s.client.Client
	var err error
	switch command {
	case rpc.StandbyGuest:
		_, err = methods.StandbyGuest(ctx, rt, &types.StandbyGuest{This: vm})
	case rpc.ShutdownGuest:
		_, err = methods.ShutdownGuest(ctx, rt, &types.ShutdownGuest{This: vm})
	default:
		_, err = methods.RebootGuest(ctx, rt, &types.RebootGuest{This: vm})
	}
	return err
}

func argsOf[T any](command string, args interface{}) (*T, error) {
	a, ok := args.(*T)
	if !ok || nil == a {
		return nil, fmt.Errorf("vim: %s takes %T, got %T", command, (*T)(nil), args)
	}
	return a, nil
}

func setReply[T any](reply interface{}, v T) error {
	if nil == reply {
		return nil
	}
	p, ok := reply.(*T)
	if !ok || nil == p {
		return fmt.Errorf("vim: cannot reply %T into %T", v, reply)
	}
	*p = v
	return nil
}

var (
	_ rpc.Session = (*Session)(nil)
	_ rpc.Dialer  = Dialer{}
)
