package rpctest

import (
	"context"
	"sync"

	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
)

/*
Dialer hands out a fresh Session built by New on every Dial, or fails with
Err when it is set.
*/
type Dialer struct {
	New func() *Session
	Err error

	mu       sync.Mutex
	specs    []rpc.ConnectSpec
	sessions []*Session
}

/*
Dial implements rpc.Dialer.
*/
func (d *Dialer) Dial(ctx context.Context, spec rpc.ConnectSpec) (rpc.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.specs = append(d.specs, spec)
	if nil != d.Err {
		return nil, d.Err
	}
	s := d.New()
	d.sessions = append(d.sessions, s)
	return s, nil
}

/*
Sessions returns every session handed out so far.
*/
func (d *Dialer) Sessions() []*Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Session(nil), d.sessions...)
}

/*
Specs returns the connect specs of every Dial.
*/
func (d *Dialer) Specs() []rpc.ConnectSpec {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]rpc.ConnectSpec(nil), d.specs...)
}
