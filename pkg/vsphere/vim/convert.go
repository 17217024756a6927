package vim

import (
	"reflect"

	"github.com/vmware/govmomi/vim25/types"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
	"github.com/mkenney/vsphere/pkg/vsphere/spec"
)

func toRef(ref mo.Reference) types.ManagedObjectReference {
	return types.ManagedObjectReference{Type: ref.Type, Value: ref.Value}
}

func fromRef(ref types.ManagedObjectReference) mo.Reference {
	return mo.NewReference(ref.Type, ref.Value)
}

func toFilterSpec(fs spec.PropertyFilterSpec) types.PropertyFilterSpec {
	out := types.PropertyFilterSpec{
		PropSet:   make([]types.PropertySpec, 0, len(fs.PropSet)),
		ObjectSet: make([]types.ObjectSpec, 0, len(fs.ObjectSet)),
	}
	if fs.ReportMissingObjectsInResults {
		out.ReportMissingObjectsInResults = types.NewBool(true)
	}
	for _, ps := range fs.PropSet {
		p := types.PropertySpec{Type: ps.Type}
		if ps.All {
			p.All = types.NewBool(true)
		} else {
			p.PathSet = ps.PathSet
		}
		out.PropSet = append(out.PropSet, p)
	}
	for _, objSpec := range fs.ObjectSet {
		o := types.ObjectSpec{
			Obj:  toRef(objSpec.Obj),
			Skip: types.NewBool(objSpec.Skip),
		}
		for _, ts := range objSpec.SelectSet {
			o.SelectSet = append(o.SelectSet, &types.TraversalSpec{
				SelectionSpec: types.SelectionSpec{Name: ts.Name},
				Type:          ts.Type,
				Path:          ts.Path,
				Skip:          types.NewBool(ts.Skip),
			})
		}
		out.ObjectSet = append(out.ObjectSet, o)
	}
	return out
}

func fromObjectContents(ocs []types.ObjectContent) []rpc.ObjectContent {
	out := make([]rpc.ObjectContent, 0, len(ocs))
	for _, oc := range ocs {
		props := make([]rpc.DynamicProperty, 0, len(oc.PropSet))
		for _, dp := range oc.PropSet {
			props = append(props, rpc.DynamicProperty{Name: dp.Name, Val: fromValue(dp.Val)})
		}
		out = append(out, rpc.ObjectContent{Obj: fromRef(oc.Obj), PropSet: props})
	}
	return out
}

// fromUpdateSet converts a WaitForUpdatesEx reply. A nil set means the wait
// timed out without changes and keeps the caller's version.
func fromUpdateSet(set *types.UpdateSet, version string) rpc.UpdateSet {
	if nil == set {
		return rpc.UpdateSet{Version: version}
	}
	out := rpc.UpdateSet{Version: set.Version}
	if nil != set.Truncated {
		out.Truncated = *set.Truncated
	}
	for _, fu := range set.FilterSet {
		pfu := rpc.PropertyFilterUpdate{Filter: fromRef(fu.Filter)}
		for _, ou := range fu.ObjectSet {
			update := rpc.ObjectUpdate{
				Kind: rpc.ObjectUpdateKind(string(ou.Kind)),
				Obj:  fromRef(ou.Obj),
			}
			for _, pc := range ou.ChangeSet {
				update.ChangeSet = append(update.ChangeSet, rpc.PropertyChange{
					Name: pc.Name,
					Op:   fromChangeOp(pc.Op),
					Val:  fromValue(pc.Val),
				})
			}
			pfu.ObjectSet = append(pfu.ObjectSet, update)
		}
		out.FilterSet = append(out.FilterSet, pfu)
	}
	return out
}

func fromChangeOp(op types.PropertyChangeOp) rpc.PropertyChangeOp {
	switch op {
	case types.PropertyChangeOpAdd:
		return rpc.ChangeOpAdd
	case types.PropertyChangeOpRemove, types.PropertyChangeOpIndirectRemove:
		return rpc.ChangeOpRemove
	default:
		return rpc.ChangeOpModify
	}
}

// fromValue turns protocol enums into plain strings, references into
// mo.Reference and method faults into their message. Other values pass
// through unchanged.
func fromValue(v types.AnyType) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case types.ManagedObjectReference:
		return fromRef(val)
	case *types.LocalizedMethodFault:
		if nil == val {
			return nil
		}
		if "" != val.LocalizedMessage {
			return val.LocalizedMessage
		}
		if nil != val.Fault {
			t := reflect.TypeOf(val.Fault)
			if reflect.Ptr == t.Kind() {
				t = t.Elem()
			}
			return t.Name()
		}
		return "fault"
	case types.LocalizedMethodFault:
		return fromValue(&val)
	}
	rv := reflect.ValueOf(v)
	if reflect.String == rv.Kind() {
		return rv.String()
	}
	return v
}
