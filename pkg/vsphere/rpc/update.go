package rpc

import (
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
)

/*
ObjectUpdateKind is the kind of change an ObjectUpdate reports.
*/
type ObjectUpdateKind string

const (
	ObjectUpdateEnter  ObjectUpdateKind = "enter"
	ObjectUpdateLeave  ObjectUpdateKind = "leave"
	ObjectUpdateModify ObjectUpdateKind = "modify"
)

/*
PropertyChangeOp is the operation applied to a property.
*/
type PropertyChangeOp string

const (
	ChangeOpAdd    PropertyChangeOp = "add"
	ChangeOpModify PropertyChangeOp = "modify"
	ChangeOpRemove PropertyChangeOp = "remove"
)

/*
PropertyChange is one changed property. Val is empty for ChangeOpRemove.
*/
type PropertyChange struct {
	Name string
	Op   PropertyChangeOp
	Val  interface{}
}

/*
ObjectUpdate carries the changes of one object.
*/
type ObjectUpdate struct {
	Kind      ObjectUpdateKind
	Obj       mo.Reference
	ChangeSet []PropertyChange
}

/*
PropertyFilterUpdate carries the object updates of one filter.
*/
type PropertyFilterUpdate struct {
	Filter    mo.Reference
	ObjectSet []ObjectUpdate
}

/*
UpdateSet is the reply of WaitForUpdatesEx. Version is the cursor to pass to
the next call. An UpdateSet with no FilterSet reports that nothing changed
before the server's wait interval elapsed.
*/
type UpdateSet struct {
	Version   string
	FilterSet []PropertyFilterUpdate
	Truncated bool
}
