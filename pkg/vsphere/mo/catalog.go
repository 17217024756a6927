package mo

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// Managed object types used directly by the client.
const (
	TypeContainerView     = "ContainerView"
	TypeDatacenter        = "Datacenter"
	TypeFolder            = "Folder"
	TypePropertyCollector = "PropertyCollector"
	TypePropertyFilter    = "PropertyFilter"
	TypeTask              = "Task"
	TypeViewManager       = "ViewManager"
	TypeVirtualMachine    = "VirtualMachine"
)

/*
Catalog is the set of recognized managed object type names. Specs naming a
type outside the catalog fail validation instead of being sent to the server.
*/
var Catalog = sets.New[string](
	"Alarm",
	"AlarmManager",
	"AuthorizationManager",
	"ClusterComputeResource",
	"ClusterProfile",
	"ClusterProfileManager",
	"ComputeResource",
	TypeContainerView,
	"CustomFieldsManager",
	"CustomizationSpecManager",
	TypeDatacenter,
	"Datastore",
	"DatastoreNamespaceManager",
	"DiagnosticManager",
	"DistributedVirtualPortgroup",
	"DistributedVirtualSwitch",
	TypeFolder,
	"GuestFileManager",
	"GuestOperationsManager",
	"HostSystem",
	"InventoryView",
	"ListView",
	"Network",
	TypePropertyCollector,
	TypePropertyFilter,
	"ResourcePool",
	"ScheduledTask",
	"ScheduledTaskManager",
	"ServiceInstance",
	"ServiceManager",
	"SessionManager",
	TypeTask,
	"TaskManager",
	"UserDirectory",
	"View",
	TypeViewManager,
	TypeVirtualMachine,
	"VirtualMachineProvisioningChecker",
	"VirtualMachineSnapshot",
)

/*
Known reports whether typ is in the catalog.
*/
func Known(typ string) bool {
	return Catalog.Has(typ)
}
