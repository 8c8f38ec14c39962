package broker

import (
	"sync"
	"sync/atomic"
)

type subscribeContent[T any] struct {
	ID      uint64
	Channel chan T
}

// Notifier broadcasts the latest value of a mutable cell to every subscriber.
//
// Each subscriber channel has a single slot. When a subscriber falls behind, the pending value is replaced with the
// newer one so that a slow consumer never blocks the publisher and always ends up seeing the latest state. This
// fits UI style consumers that re-render from the current state rather than replaying every change.
type Notifier[T any] struct {
	stopChannel        chan struct{}
	stopOnce           sync.Once
	publishChannel     chan T
	subscribeChannel   chan subscribeContent[T]
	unsubscribeChannel chan uint64
	nextID             atomic.Uint64
}

// NewNotifier creates a new Notifier. Call Start() in a goroutine and Stop() when done.
func NewNotifier[T any]() *Notifier[T] {
	return &Notifier[T]{
		stopChannel:        make(chan struct{}),
		publishChannel:     make(chan T),
		subscribeChannel:   make(chan subscribeContent[T]),
		unsubscribeChannel: make(chan uint64),
	}
}

// Start listening for publish, subscribe, and unsubscribe events. This function blocks until Stop() is called,
// so it should be called in a goroutine.
func (n *Notifier[T]) Start() {
	var (
		latest     T
		hasLatest  bool
		subscribed = map[uint64]chan T{}
	)
	for {
		select {
		case <-n.stopChannel:
			for id, c := range subscribed {
				close(c)
				delete(subscribed, id)
			}
			return

		case subscription := <-n.subscribeChannel:
			subscribed[subscription.ID] = subscription.Channel
			if hasLatest {
				deliver(subscription.Channel, latest)
			}

		case id := <-n.unsubscribeChannel:
			if c, ok := subscribed[id]; ok {
				close(c)
				delete(subscribed, id)
			}

		case v := <-n.publishChannel:
			latest, hasLatest = v, true
			for _, c := range subscribed {
				deliver(c, v)
			}
		}
	}
}

// deliver replaces any value the subscriber has not yet received. Only the Start goroutine sends on c, so after the
// drain the slot is free.
func deliver[T any](c chan T, v T) {
	select {
	case c <- v:
	default:
		select {
		case <-c:
		default:
		}
		c <- v
	}
}

// Stop the goroutine that handles the notifier and close all subscriber channels. Safe to call more than once.
func (n *Notifier[T]) Stop() {
	n.stopOnce.Do(func() {
		close(n.stopChannel)
	})
}

// Publish v as the latest value. It is a no-op after Stop().
func (n *Notifier[T]) Publish(v T) {
	select {
	case n.publishChannel <- v:
	case <-n.stopChannel:
	}
}

// Subscribe returns a channel receiving the latest published value followed by every subsequent change, and a
// function to cancel the subscription. The channel is closed on unsubscribe or Stop().
func (n *Notifier[T]) Subscribe() (<-chan T, func()) {
	id := n.nextID.Add(1)
	channel := make(chan T, 1)
	select {
	case n.subscribeChannel <- subscribeContent[T]{ID: id, Channel: channel}:
	case <-n.stopChannel:
		close(channel)
		return channel, func() {}
	}

	var once sync.Once
	return channel, func() {
		once.Do(func() {
			select {
			case n.unsubscribeChannel <- id:
			case <-n.stopChannel:
			}
		})
	}
}
