package power

import (
	"github.com/mkenney/vsphere/internal/codes"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
)

/*
Op names a power operation.
*/
type Op string

// Supported power operations.
const (
	PowerOn  Op = "powerOn"
	PowerOff Op = "powerOff"
	Reset    Op = "reset"
	Suspend  Op = "suspend"
	Standby  Op = "standby"
	Shutdown Op = "shutdown"
	Reboot   Op = "reboot"
)

/*
Commands maps every supported operation to the remote command implementing it.
*/
var Commands = map[Op]string{
	PowerOn:  rpc.PowerOnVMTask,
	PowerOff: rpc.PowerOffVMTask,
	Reset:    rpc.ResetVMTask,
	Suspend:  rpc.SuspendVMTask,
	Standby:  rpc.StandbyGuest,
	Shutdown: rpc.ShutdownGuest,
	Reboot:   rpc.RebootGuest,
}

/*
Command returns the remote command of op, or ErrInvalidPowerOp.
*/
func (op Op) Command() (string, error) {
	command, ok := Commands[op]
	if !ok {
		return "", vserrors.New(codes.ErrInvalidPowerOp, "power", "%q", string(op))
	}
	return command, nil
}

func createsTask(command string) bool {
	switch command {
	case rpc.StandbyGuest, rpc.ShutdownGuest, rpc.RebootGuest:
		return false
	}
	return true
}
