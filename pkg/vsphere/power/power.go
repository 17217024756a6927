/*
Package power runs virtual machine power operations and waits for the tasks
they create to finish.
*/
package power

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/bdlm/log"
	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mkenney/vsphere/internal/codes"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
	"github.com/mkenney/vsphere/pkg/vsphere/watch"
)

// DefaultConcurrency bounds the refs processed at once when New is given a
// non-positive limit.
const DefaultConcurrency = 8

// Task properties watched after a power command is submitted.
const (
	TaskStateProperty = "info.state"
	TaskErrorProperty = "info.error"

	TaskSuccess = "success"
	TaskError   = "error"
)

/*
Resolver maps virtual machine names to references.
*/
type Resolver interface {
	ResolveNames(ctx context.Context, container mo.Reference, typ string, names []string) (map[string][]mo.Reference, error)
}

/*
Waiter waits for a watched property to reach an expected value.
*/
type Waiter interface {
	WaitForValues(ctx context.Context, req watch.Request) (watch.Result, error)
}

/*
Outcome is the result of one power operation. Result holds the final task
state, the task error when Failed is set, or "success" for guest operations,
which create no task.
*/
type Outcome struct {
	Ref    mo.Reference
	Result interface{}
	Failed bool
}

/*
Coordinator submits power commands on a session and watches the resulting
tasks.
*/
type Coordinator struct {
	session  rpc.Session
	resolver Resolver
	waiter   Waiter
	limit    int
}

/*
New returns a Coordinator. At most limit refs are processed concurrently.
*/
func New(session rpc.Session, resolver Resolver, waiter Waiter, limit int) *Coordinator {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Coordinator{
		session:  session,
		resolver: resolver,
		waiter:   waiter,
		limit:    limit,
	}
}

/*
ByName runs op on the virtual machines named by names. Every name must match
exactly one virtual machine under the root folder, otherwise nothing is
submitted and ErrObjectsNotFound is returned.
*/
func (c *Coordinator) ByName(ctx context.Context, op Op, names ...string) ([]Outcome, error) {
	if _, err := op.Command(); nil != err {
		return nil, err
	}
	if 0 == len(names) {
		return nil, vserrors.New(codes.ErrNoTargets, "ByName", "no virtual machine names given")
	}

	// a repeated name targets its machine once
	seen := sets.New[string]()
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if seen.Has(name) {
			continue
		}
		seen.Insert(name)
		unique = append(unique, name)
	}
	names = unique

	matches, err := c.resolver.ResolveNames(ctx, c.session.ServiceContent().RootFolder, mo.TypeVirtualMachine, names)
	if nil != err {
		return nil, err
	}

	refs := make([]mo.Reference, 0, len(names))
	missing := []string{}
	for _, name := range names {
		if 1 != len(matches[name]) {
			missing = append(missing, name)
			continue
		}
		refs = append(refs, matches[name][0])
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, vserrors.New(codes.ErrObjectsNotFound, "ByName", "%s", strings.Join(missing, ", "))
	}
	return c.ByRef(ctx, op, refs...)
}

/*
ByRef runs op on every ref concurrently and waits for all of them. Outcomes
are returned in completion order. When any operation fails the returned *Error
carries every outcome, failed or not.
*/
func (c *Coordinator) ByRef(ctx context.Context, op Op, refs ...mo.Reference) ([]Outcome, error) {
	command, err := op.Command()
	if nil != err {
		return nil, err
	}
	if 0 == len(refs) {
		return nil, vserrors.New(codes.ErrNoTargets, "ByRef", "no managed object references given")
	}

	var (
		mu       sync.Mutex
		outcomes = make([]Outcome, 0, len(refs))
	)
	g := new(errgroup.Group)
	g.SetLimit(c.limit)
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			outcome := c.run(ctx, op, command, ref)
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, outcome := range outcomes {
		if outcome.Failed {
			return outcomes, &Error{Op: op, Outcomes: outcomes}
		}
	}
	return outcomes, nil
}

func (c *Coordinator) run(ctx context.Context, op Op, command string, ref mo.Reference) Outcome {
	logger := log.WithFields(log.Fields{
		"op":      string(op),
		"command": command,
		"ref":     ref.String(),
	})

	if !createsTask(command) {
		if err := c.session.Invoke(ctx, command, &rpc.ObjectArgs{This: ref}, nil); nil != err {
			logger.WithField("err", err).Warn("power command failed")
			return Outcome{Ref: ref, Result: vserrors.Wrap(err, codes.ErrSession, command, ref), Failed: true}
		}
		logger.Info("guest power command accepted")
		return Outcome{Ref: ref, Result: TaskSuccess}
	}

	var task mo.Reference
	if err := c.session.Invoke(ctx, command, &rpc.ObjectArgs{This: ref}, &task); nil != err {
		logger.WithField("err", err).Warn("power command failed")
		return Outcome{Ref: ref, Result: vserrors.Wrap(err, codes.ErrSession, command, ref), Failed: true}
	}
	logger = logger.WithField("task", task.String())
	logger.Info("power task submitted")

	res, err := c.waiter.WaitForValues(ctx, watch.Request{
		Ref:          task,
		FilterProps:  []string{TaskStateProperty, TaskErrorProperty},
		EndWaitProps: []string{"state"},
		ExpectedVals: []interface{}{TaskSuccess, TaskError},
	})
	if nil != err {
		logger.WithField("err", err).Warn("power task watch failed")
		return Outcome{Ref: ref, Result: err, Failed: true}
	}

	if taskErr, ok := res[TaskErrorProperty]; ok && nil != taskErr && "" != taskErr {
		logger.WithField("error", taskErr).Warn("power task failed")
		return Outcome{Ref: ref, Result: taskErr, Failed: true}
	}
	state := res[TaskStateProperty]
	logger.WithField("state", state).Info("power task finished")
	return Outcome{Ref: ref, Result: state, Failed: TaskError == stateName(state)}
}

// stateName returns state as a plain string when it is any string kind, such
// as a protocol enum.
func stateName(state interface{}) string {
	if nil == state {
		return ""
	}
	rv := reflect.ValueOf(state)
	if reflect.String != rv.Kind() {
		return ""
	}
	return rv.String()
}
