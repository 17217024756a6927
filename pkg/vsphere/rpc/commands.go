package rpc

import (
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/spec"
)

// Property collector and view manager commands.
const (
	// CreateContainerView takes *CreateContainerViewArgs, replies *mo.Reference.
	CreateContainerView = "CreateContainerView"
	// DestroyView takes *DestroyViewArgs, no reply.
	DestroyView = "DestroyView"
	// RetrievePropertiesEx takes *RetrievePropertiesArgs, replies *RetrieveResult.
	RetrievePropertiesEx = "RetrievePropertiesEx"
	// CreateFilter takes *CreateFilterArgs, replies *mo.Reference.
	CreateFilter = "CreateFilter"
	// WaitForUpdatesEx takes *WaitForUpdatesArgs, replies *UpdateSet.
	WaitForUpdatesEx = "WaitForUpdatesEx"
)

// Virtual machine power commands. All take *ObjectArgs. The *_Task commands
// reply *mo.Reference naming the created task; the guest commands have no
// reply.
const (
	PowerOnVMTask  = "PowerOnVM_Task"
	PowerOffVMTask = "PowerOffVM_Task"
	ResetVMTask    = "ResetVM_Task"
	SuspendVMTask  = "SuspendVM_Task"
	StandbyGuest   = "StandbyGuest"
	ShutdownGuest  = "ShutdownGuest"
	RebootGuest    = "RebootGuest"
)

// CreateContainerViewArgs are the arguments of CreateContainerView.
type CreateContainerViewArgs struct {
	This      mo.Reference
	Container mo.Reference
	Type      []string
	Recursive bool
}

// DestroyViewArgs are the arguments of DestroyView.
type DestroyViewArgs struct {
	This mo.Reference
}

// RetrieveOptions bound the size of a RetrievePropertiesEx page.
type RetrieveOptions struct {
	MaxObjects int32
}

// RetrievePropertiesArgs are the arguments of RetrievePropertiesEx.
type RetrievePropertiesArgs struct {
	This    mo.Reference
	SpecSet []spec.PropertyFilterSpec
	Options RetrieveOptions
}

// DynamicProperty is one retrieved property value.
type DynamicProperty struct {
	Name string
	Val  interface{}
}

// ObjectContent is one retrieved object and its properties.
type ObjectContent struct {
	Obj     mo.Reference
	PropSet []DynamicProperty
}

// RetrieveResult is the complete, ordered result of RetrievePropertiesEx.
type RetrieveResult struct {
	Objects []ObjectContent
}

// CreateFilterArgs are the arguments of CreateFilter.
type CreateFilterArgs struct {
	This           mo.Reference
	Spec           spec.PropertyFilterSpec
	PartialUpdates bool
}

// WaitOptions bound how long the server holds a WaitForUpdatesEx call.
type WaitOptions struct {
	MaxWaitSeconds int32
}

// WaitForUpdatesArgs are the arguments of WaitForUpdatesEx.
type WaitForUpdatesArgs struct {
	This    mo.Reference
	Version string
	Options WaitOptions
}

// ObjectArgs are the arguments of commands that act on one object.
type ObjectArgs struct {
	This mo.Reference
}
