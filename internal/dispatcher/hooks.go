package dispatcher

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/cmdhistory/internal/command"
)

// Observer is notified after every completed execute, undo, redo, cleanup
// and reset. It runs synchronously on the caller's stack; a returned error
// stops delivery to later observers and is returned to the caller.
type Observer interface {
	OperationExecuted(rec command.Record) error
}

// ObserverFunc is a function adapter for Observer.
type ObserverFunc func(rec command.Record) error

// OperationExecuted implements Observer.
func (f ObserverFunc) OperationExecuted(rec command.Record) error {
	return f(rec)
}

// Subscription is a registered observer.
type Subscription struct {
	id         string
	observer   Observer
	dispatcher *Dispatcher
	cancelled  bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// IsActive returns true until the subscription is cancelled.
func (s *Subscription) IsActive() bool {
	return !s.cancelled
}

// Cancel stops delivery to the observer. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	s.dispatcher.removeSubscription(s)
}

// Subscribe registers o. Observers are notified in registration order.
func (d *Dispatcher) Subscribe(o Observer) *Subscription {
	sub := &Subscription{
		id:         uuid.NewString(),
		observer:   o,
		dispatcher: d,
	}
	d.observers = append(d.observers, sub)
	return sub
}

// SubscribeFunc registers fn as an observer.
func (d *Dispatcher) SubscribeFunc(fn func(rec command.Record) error) *Subscription {
	return d.Subscribe(ObserverFunc(fn))
}

// Unsubscribe cancels sub. Returns false if it was not active on d.
func (d *Dispatcher) Unsubscribe(sub *Subscription) bool {
	if sub == nil || sub.dispatcher != d || sub.cancelled {
		return false
	}
	sub.Cancel()
	return true
}

// ObserverCount returns the number of active observers.
func (d *Dispatcher) ObserverCount() int {
	return len(d.observers)
}

func (d *Dispatcher) removeSubscription(sub *Subscription) {
	d.observers = slices.DeleteFunc(d.observers, func(s *Subscription) bool {
		return s == sub
	})
}

// runObservers delivers rec to a snapshot of the current observers, so
// observers may subscribe or cancel while being notified.
func (d *Dispatcher) runObservers(rec command.Record) error {
	if len(d.observers) == 0 {
		return nil
	}

	for _, sub := range slices.Clone(d.observers) {
		if sub.cancelled {
			continue
		}
		if err := sub.observer.OperationExecuted(rec); err != nil {
			d.logger.Debug().Err(err).Str("subscription", sub.id).Msg("observer failed")
			return &ObserverError{
				SubscriptionID: sub.id,
				Op:             rec.Op,
				Err:            err,
			}
		}
	}
	return nil
}
