/*
Package rpctest provides a scripted in-memory rpc.Session for tests.
*/
package rpctest

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
)

/*
Handler answers one command. It decodes its result into reply with Reply.
*/
type Handler func(ctx context.Context, args interface{}, reply interface{}) error

/*
Call records one Invoke.
*/
type Call struct {
	Command string
	Args    interface{}
}

/*
Session is a scripted rpc.Session. Commands without a handler fail.
*/
type Session struct {
	Content  rpc.ServiceContent
	CloseErr error

	mu       sync.Mutex
	handlers map[string]Handler
	calls    []Call
	closed   int
}

/*
NewSession returns a Session with a default service content.
*/
func NewSession() *Session {
	return &Session{
		Content: rpc.ServiceContent{
			RootFolder:        mo.NewReference(mo.TypeFolder, "group-d1"),
			PropertyCollector: mo.NewReference(mo.TypePropertyCollector, "propertyCollector"),
			ViewManager:       mo.NewReference(mo.TypeViewManager, "ViewManager"),
		},
		handlers: map[string]Handler{},
	}
}

/*
Handle registers h for command and returns s.
*/
func (s *Session) Handle(command string, h Handler) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[command] = h
	return s
}

/*
Invoke implements rpc.Session.
*/
func (s *Session) Invoke(ctx context.Context, command string, args interface{}, reply interface{}) error {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Command: command, Args: args})
	h, ok := s.handlers[command]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("rpctest: no handler for %s", command)
	}
	return h(ctx, args, reply)
}

/*
ServiceContent implements rpc.Session.
*/
func (s *Session) ServiceContent() rpc.ServiceContent {
	return s.Content
}

/*
Close implements rpc.Session.
*/
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return s.CloseErr
}

/*
Calls returns every recorded call.
*/
func (s *Session) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

/*
CallsTo returns the recorded calls of command.
*/
func (s *Session) CallsTo(command string) []Call {
	var calls []Call
	for _, c := range s.Calls() {
		if c.Command == command {
			calls = append(calls, c)
		}
	}
	return calls
}

/*
Closed returns how many times Close was called.
*/
func (s *Session) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

/*
Reply stores value into reply, which must be nil or a pointer to a value of
value's type.
*/
func Reply(reply interface{}, value interface{}) error {
	if nil == reply {
		return nil
	}
	rv := reflect.ValueOf(reply)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("rpctest: reply must be a non-nil pointer, got %T", reply)
	}
	if nil == value {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
		return nil
	}
	vv := reflect.ValueOf(value)
	if !vv.Type().AssignableTo(rv.Elem().Type()) {
		return fmt.Errorf("rpctest: cannot reply %T into %T", value, reply)
	}
	rv.Elem().Set(vv)
	return nil
}

/*
Returns answers every call with value.
*/
func Returns(value interface{}) Handler {
	return func(ctx context.Context, args interface{}, reply interface{}) error {
		return Reply(reply, value)
	}
}

/*
NoReply accepts every call without a result.
*/
func NoReply() Handler {
	return func(ctx context.Context, args interface{}, reply interface{}) error {
		return nil
	}
}

/*
Fails answers every call with err.
*/
func Fails(err error) Handler {
	return func(ctx context.Context, args interface{}, reply interface{}) error {
		return err
	}
}

/*
Updates answers WaitForUpdatesEx with sets in order. Once they are exhausted it
blocks like a server with nothing to report until ctx is done.
*/
func Updates(sets ...rpc.UpdateSet) Handler {
	var mu sync.Mutex
	next := 0
	return func(ctx context.Context, args interface{}, reply interface{}) error {
		mu.Lock()
		if next < len(sets) {
			set := sets[next]
			next++
			mu.Unlock()
			return Reply(reply, set)
		}
		mu.Unlock()
		<-ctx.Done()
		return ctx.Err()
	}
}
