/*
Package vsphere wires the inventory, change watch and power packages onto a
single vCenter session.
*/
package vsphere

import (
	"context"

	"github.com/bdlm/log"

	"github.com/mkenney/vsphere/internal/codes"
	"github.com/mkenney/vsphere/pkg/config"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/inventory"
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/power"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
	"github.com/mkenney/vsphere/pkg/vsphere/watch"
)

/*
Client defines the vSphere API client. Queries and power commands share the
primary session; every watch dials a session of its own with the same
parameters.
*/
type Client struct {
	Session   rpc.Session
	Inventory *inventory.Engine
	Watcher   *watch.Watcher
	Power     *power.Coordinator
}

/*
New is the constructor for the Client struct. cfg is validated before
anything is dialed.
*/
func New(ctx context.Context, cfg config.Config, dialer rpc.Dialer) (*Client, error) {
	if err := cfg.Validate(); nil != err {
		return nil, err
	}

	connect := cfg.ConnectSpec()
	session, err := dialer.Dial(ctx, connect)
	if nil != err {
		return nil, vserrors.Wrap(err, codes.ErrSession, "Dial", nil)
	}
	log.WithFields(log.Fields{
		"host": connect.Host,
		"user": connect.User,
	}).Info("connected to vCenter")

	client := &Client{
		Session:   session,
		Inventory: inventory.New(session),
		Watcher:   watch.New(dialer, connect, cfg.WatchOptions()),
	}
	client.Power = power.New(session, client.Inventory, client.Watcher, cfg.MaxConcurrentOps)

	return client, nil
}

/*
RootFolder returns the root folder of the inventory.
*/
func (c *Client) RootFolder() mo.Reference {
	return c.Session.ServiceContent().RootFolder
}

/*
RunCommand invokes an arbitrary remote command on the primary session.
*/
func (c *Client) RunCommand(ctx context.Context, command string, args interface{}, reply interface{}) error {
	if err := c.Session.Invoke(ctx, command, args, reply); nil != err {
		return vserrors.Wrap(err, codes.ErrSession, command, nil)
	}
	return nil
}

/*
WaitForValues watches filterProps of ref until a property named by
endWaitProps holds one of expected.
*/
func (c *Client) WaitForValues(
	ctx context.Context,
	ref mo.Reference,
	filterProps []string,
	endWaitProps []string,
	expected ...interface{},
) (watch.Result, error) {
	return c.Watcher.WaitForValues(ctx, watch.Request{
		Ref:          ref,
		FilterProps:  filterProps,
		EndWaitProps: endWaitProps,
		ExpectedVals: expected,
	})
}

/*
Close closes the primary session.
*/
func (c *Client) Close(ctx context.Context) error {
	if err := c.Session.Close(ctx); nil != err {
		return vserrors.Wrap(err, codes.ErrSession, "Close", nil)
	}
	return nil
}
