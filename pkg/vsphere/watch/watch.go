/*
Package watch waits for a property of a managed object to reach one of a set
of expected values.

Every call opens its own session, creates a property filter on it and polls
WaitForUpdatesEx until the watched property reaches an expected value, the
call's deadline passes or the transport fails. Property collector filters
belong to a session, so watches never share one.
*/
package watch

import (
	"context"
	"time"

	"github.com/bdlm/log"
	std "github.com/bdlm/std/error"
	"github.com/cenkalti/backoff"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"k8s.io/client-go/util/flowcontrol"

	"github.com/mkenney/vsphere/internal/codes"
	vserrors "github.com/mkenney/vsphere/pkg/vsphere/errors"
	"github.com/mkenney/vsphere/pkg/vsphere/mo"
	"github.com/mkenney/vsphere/pkg/vsphere/rpc"
	"github.com/mkenney/vsphere/pkg/vsphere/spec"
)

// Defaults applied to zero Options fields.
const (
	DefaultTimeout        = 10 * time.Minute
	DefaultMaxWaitSeconds = 60
	DefaultPollQPS        = 10
	DefaultPollBurst      = 1
	DefaultIdleBackoff    = 250 * time.Millisecond
	DefaultIdleBackoffMax = 5 * time.Second
)

// closeTimeout bounds closing the dedicated session once the watch is over.
const closeTimeout = 30 * time.Second

/*
Options tune a Watcher. Zero fields take the defaults above. A negative
PollQPS disables request pacing and a negative IdleBackoff disables the delay
after polls that reported nothing.
*/
type Options struct {
	Timeout        time.Duration
	MaxWaitSeconds int32
	PollQPS        float32
	PollBurst      int
	IdleBackoff    time.Duration
	IdleBackoffMax time.Duration
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxWaitSeconds <= 0 {
		o.MaxWaitSeconds = DefaultMaxWaitSeconds
	}
	if 0 == o.PollQPS {
		o.PollQPS = DefaultPollQPS
	}
	if o.PollBurst <= 0 {
		o.PollBurst = DefaultPollBurst
	}
	if 0 == o.IdleBackoff {
		o.IdleBackoff = DefaultIdleBackoff
	}
	if o.IdleBackoffMax <= 0 {
		o.IdleBackoffMax = DefaultIdleBackoffMax
	}
	return o
}

/*
Request describes one watch: observe FilterProps of Ref and resolve once any
property named by EndWaitProps holds one of ExpectedVals.
*/
type Request struct {
	Ref          mo.Reference
	FilterProps  []string
	EndWaitProps []string
	ExpectedVals []interface{}
}

/*
Result holds the latest observed value of each filter property, keyed by the
requested property name.
*/
type Result map[string]interface{}

/*
Watcher runs watches, each on a session of its own.
*/
type Watcher struct {
	dialer  rpc.Dialer
	connect rpc.ConnectSpec
	opts    Options
}

/*
New returns a Watcher that opens its sessions with dialer and connect.
*/
func New(dialer rpc.Dialer, connect rpc.ConnectSpec, opts Options) *Watcher {
	return &Watcher{
		dialer:  dialer,
		connect: connect,
		opts:    opts.withDefaults(),
	}
}

/*
WaitForValues blocks until req resolves and returns the latest values of its
filter properties. The call is bounded by ctx and the configured timeout;
cancellation fails with ErrCancelled and an expired deadline with
ErrTimedOut. The dedicated session is closed on every return path.
*/
func (w *Watcher) WaitForValues(ctx context.Context, req Request) (Result, error) {
	fs, err := filterSpec(req)
	if nil != err {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	id := uuid.New().String()
	logger := log.WithFields(log.Fields{
		"watch": id,
		"ref":   req.Ref.String(),
	})
	r := &run{
		w:       w,
		req:     req,
		spec:    fs,
		logger:  logger,
		machine: newMachine(logger),
		tracker: newTracker(req.FilterProps, req.EndWaitProps, req.ExpectedVals),
	}
	return r.execute(ctx)
}

func filterSpec(req Request) (spec.PropertyFilterSpec, error) {
	if 0 == len(req.EndWaitProps) || 0 == len(req.ExpectedVals) {
		return spec.PropertyFilterSpec{}, vserrors.New(
			codes.ErrInvalidSpec,
			"WaitForValues",
			"a watch needs at least one end-wait property and one expected value",
		)
	}
	// an empty name would match every change
	for x, prop := range req.EndWaitProps {
		if "" == prop {
			return spec.PropertyFilterSpec{}, vserrors.New(
				codes.ErrInvalidSpec,
				"WaitForValues",
				"end-wait property %d is empty",
				x,
			)
		}
	}
	ps, err := spec.BuildPropertySpec(req.Ref.Type, spec.Paths(req.FilterProps...))
	if nil != err {
		return spec.PropertyFilterSpec{}, err
	}
	fs, err := spec.BuildFilterSpec([]spec.PropertySpec{ps}, []spec.ObjectSpec{spec.SingleObjectSpec(req.Ref)})
	if nil != err {
		return spec.PropertyFilterSpec{}, err
	}
	if err := fs.Validate(); nil != err {
		return spec.PropertyFilterSpec{}, err
	}
	return fs, nil
}

/*
run is the state of one WaitForValues call.
*/
type run struct {
	w       *Watcher
	req     Request
	spec    spec.PropertyFilterSpec
	logger  *log.Entry
	machine *fsm.FSM
	tracker *tracker
	session rpc.Session
}

func (r *run) execute(ctx context.Context) (Result, error) {
	sess, err := r.w.dialer.Dial(ctx, r.w.connect)
	if nil != err {
		return nil, r.fail(ctx, r.classify(ctx, err, codes.ErrSession, "Dial"))
	}
	r.session = sess
	defer r.close(ctx)
	r.transition(ctx, EventOpened)

	var filter mo.Reference
	err = sess.Invoke(ctx, rpc.CreateFilter, &rpc.CreateFilterArgs{
		This:           sess.ServiceContent().PropertyCollector,
		Spec:           r.spec,
		PartialUpdates: true,
	}, &filter)
	if nil != err {
		return nil, r.fail(ctx, r.classify(ctx, err, codes.ErrFilterCreate, rpc.CreateFilter))
	}
	r.logger.WithField("filter", filter.String()).Debug("property filter created")
	r.transition(ctx, EventFilterCreated)

	return r.poll(ctx)
}

func (r *run) poll(ctx context.Context) (Result, error) {
	limiter := r.w.limiter()
	defer limiter.Stop()
	idle := r.w.idleBackoff()

	pc := r.session.ServiceContent().PropertyCollector
	version := ""
	for {
		if err := limiter.Wait(ctx); nil != err {
			return nil, r.fail(ctx, r.expired(ctx, err, rpc.WaitForUpdatesEx))
		}

		var set rpc.UpdateSet
		err := r.session.Invoke(ctx, rpc.WaitForUpdatesEx, &rpc.WaitForUpdatesArgs{
			This:    pc,
			Version: version,
			Options: rpc.WaitOptions{MaxWaitSeconds: r.w.opts.MaxWaitSeconds},
		}, &set)
		if nil != err {
			return nil, r.fail(ctx, r.classify(ctx, err, codes.ErrSession, rpc.WaitForUpdatesEx))
		}

		if 0 == len(set.FilterSet) {
			r.logger.WithField("version", version).Debug("no updates")
			if delay := idle.NextBackOff(); delay > 0 {
				select {
				case <-ctx.Done():
					return nil, r.fail(ctx, r.expired(ctx, ctx.Err(), rpc.WaitForUpdatesEx))
				case <-time.After(delay):
				}
			}
			continue
		}
		idle.Reset()

		if "" != set.Version {
			version = set.Version
		}
		r.tracker.apply(set)
		if r.tracker.reached() {
			r.transition(ctx, EventResolve)
			result := r.tracker.result()
			r.logger.WithFields(log.Fields{
				"version": version,
				"result":  result,
			}).Info("watch resolved")
			return result, nil
		}
		r.logger.WithField("version", version).Debug("updates did not reach an expected value")
	}
}

func (r *run) transition(ctx context.Context, event string) {
	if err := r.machine.Event(context.WithoutCancel(ctx), event); nil != err {
		r.logger.WithFields(log.Fields{
			"event": event,
			"state": r.machine.Current(),
			"err":   err,
		}).Warn("invalid watch transition")
	}
}

func (r *run) fail(ctx context.Context, err error) error {
	r.transition(ctx, EventFail)
	r.logger.WithField("err", err).Debug("watch failed")
	return err
}

// classify wraps err with code unless the call's context is done, in which
// case the watch was cancelled or timed out.
func (r *run) classify(ctx context.Context, err error, code std.Code, op string) error {
	if nil != ctx.Err() {
		return r.expired(ctx, err, op)
	}
	return vserrors.Wrap(err, code, op, r.req.Ref)
}

// expired reports a watch stopped by its context. Limiter waits fail before
// the deadline when they could not complete in time, so anything other than
// cancellation is a timeout.
func (r *run) expired(ctx context.Context, err error, op string) error {
	if context.Canceled == ctx.Err() {
		return vserrors.Wrap(err, codes.ErrCancelled, op, r.req.Ref)
	}
	return vserrors.Wrap(err, codes.ErrTimedOut, op, r.req.Ref)
}

func (r *run) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()
	if err := r.session.Close(ctx); nil != err {
		r.logger.WithField("err", err).Warn("failed to close watch session")
	}
}

func (w *Watcher) limiter() flowcontrol.RateLimiter {
	if w.opts.PollQPS < 0 {
		return flowcontrol.NewFakeAlwaysRateLimiter()
	}
	return flowcontrol.NewTokenBucketRateLimiter(w.opts.PollQPS, w.opts.PollBurst)
}

func (w *Watcher) idleBackoff() backoff.BackOff {
	if w.opts.IdleBackoff < 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.opts.IdleBackoff
	b.MaxInterval = w.opts.IdleBackoffMax
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
