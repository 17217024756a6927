/*
Package vim implements the rpc session on top of govmomi, the vSphere SOAP
client.
*/
package vim

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/bdlm/log"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/vim25/soap"

	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
)

// ErrNoHost is returned by Dial when the connect spec names no host.
var ErrNoHost = errors.New("vim: no vCenter host given")

/*
Dialer opens authenticated govmomi sessions. Host may be a bare host name or a
full SDK URL.
*/
type Dialer struct{}

/*
Dial implements rpc.Dialer. Errors are returned uncoded; callers classify them.
*/
func (Dialer) Dial(ctx context.Context, spec rpc.ConnectSpec) (rpc.Session, error) {
	u, err := soap.ParseURL(spec.Host)
	if nil != err {
		return nil, fmt.Errorf("vim: invalid vCenter host %q: %w", spec.Host, err)
	}
	if nil == u {
		return nil, ErrNoHost
	}
	if "" != spec.User {
		u.User = url.UserPassword(spec.User, spec.Password)
	}

	client, err := govmomi.NewClient(ctx, u, !spec.VerifyTLS)
	if nil != err {
		return nil, fmt.Errorf("vim: login to %s failed: %w", u.Host, err)
	}
	log.WithFields(log.Fields{
		"host": u.Host,
		"user": spec.User,
	}).Debug("vCenter session opened")

	return newSession(client), nil
}
