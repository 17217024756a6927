/*
Package rpc defines the boundary between the client core and the session that
authenticates to vCenter and executes remote commands.

The core builds the argument structs below, hands them to Session.Invoke with
a pointer to the matching reply struct, and never sees wire data. Sessions
always decode repeated fields into slices, never into a single value.
*/
package rpc

import (
	"context"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
)

/*
ConnectSpec carries the parameters needed to open a session.
*/
type ConnectSpec struct {
	Host      string
	User      string
	Password  string
	VerifyTLS bool
}

/*
ServiceContent holds the well-known objects of a connected session.
*/
type ServiceContent struct {
	RootFolder        mo.Reference
	PropertyCollector mo.Reference
	ViewManager       mo.Reference
}

/*
Session executes named remote commands. Invoke decodes the command's return
value into reply, which must be a pointer to the reply type documented for the
command, or nil when the caller does not need it.
*/
type Session interface {
	Invoke(ctx context.Context, command string, args interface{}, reply interface{}) error
	ServiceContent() ServiceContent
	Close(ctx context.Context) error
}

/*
Dialer opens new sessions.
*/
type Dialer interface {
	Dial(ctx context.Context, spec ConnectSpec) (Session, error)
}

/*
DialerFunc adapts a function to the Dialer interface.
*/
type DialerFunc func(ctx context.Context, spec ConnectSpec) (Session, error)

/*
Dial implements Dialer.
*/
func (f DialerFunc) Dial(ctx context.Context, spec ConnectSpec) (Session, error) {
	return f(ctx, spec)
}
