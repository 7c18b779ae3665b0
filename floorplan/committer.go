package floorplan

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Observer is notified around every background commit.
type Observer interface {
	CommitQueued(op string)
	CommitDone(op string, err error)
}

type nopObserver struct{}

func (nopObserver) CommitQueued(string) {}
func (nopObserver) CommitDone(string, error) {}

// Committer runs writes detached from the request that caused them, one at
// a time in scheduling order. The caller never waits; failures are logged
// and the optimistic in-memory state is left as is.
type Committer struct {
	store    Store
	log      *logrus.Entry
	errLog   *logrus.Entry
	observer Observer
	timeout  time.Duration

	pending atomic.Int64
	wg      sync.WaitGroup

	mu   sync.Mutex
	tail chan struct{}
}

type CommitterOption func(*Committer)

func WithLogger(entry *logrus.Entry) CommitterOption {
	return func(c *Committer) { c.log = entry }
}

// WithErrorLogger sends failed writes to a separate entry. Without it they
// go to the WithLogger entry.
func WithErrorLogger(entry *logrus.Entry) CommitterOption {
	return func(c *Committer) { c.errLog = entry }
}

func WithObserver(o Observer) CommitterOption {
	return func(c *Committer) { c.observer = o }
}

func WithTimeout(d time.Duration) CommitterOption {
	return func(c *Committer) { c.timeout = d }
}

func NewCommitter(store Store, opts ...CommitterOption) *Committer {
	c := &Committer{
		store:    store,
		log:      logrus.NewEntry(logrus.StandardLogger()),
		observer: nopObserver{},
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.errLog == nil {
		c.errLog = c.log
	}
	return c
}

// Go schedules fn in the background. The scope handed to fn keeps the
// request's values but not its cancellation.
func (c *Committer) Go(scope Scope, op string, fn func(store Store, scope Scope) error) {
	c.pending.Add(1)
	c.wg.Add(1)
	c.observer.CommitQueued(op)

	c.mu.Lock()
	prev, done := c.tail, make(chan struct{})
	c.tail = done
	c.mu.Unlock()

	base := context.WithoutCancel(scope.Ctx())
	go func() {
		defer c.wg.Done()
		defer c.pending.Add(-1)
		defer close(done)
		if prev != nil {
			<-prev
		}

		ctx, cancel := context.WithTimeout(base, c.timeout)
		defer cancel()

		err := fn(c.store, scope.WithContext(ctx))
		c.observer.CommitDone(op, err)
		if err != nil {
			c.errLog.WithFields(logrus.Fields{
				"tenant_id": scope.TenantID,
				"op":        op,
			}).WithError(err).Error("salon commit failed")
			return
		}
		c.log.WithField("op", op).Debug("salon commit done")
	}()
}

// Pending is the number of writes still in flight.
func (c *Committer) Pending() int64 {
	return c.pending.Load()
}

// Wait blocks until every scheduled write has finished.
func (c *Committer) Wait() {
	c.wg.Wait()
}

// Store exposes the underlying store for synchronous calls.
func (c *Committer) Store() Store {
	return c.store
}
