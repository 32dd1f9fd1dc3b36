package stream

import (
	"log/slog"
	"sync"
)

// listenerBuffer is the per-listener channel capacity. A listener that falls
// this far behind starts missing events, which the at-most-once contract
// allows.
const listenerBuffer = 8

// Notifier fans change topics out to every currently connected listener.
// Delivery is fire-and-forget: no queuing for absent listeners, no replay,
// no acknowledgement. A listener that cannot accept an event is skipped
// without affecting the others or the caller of Broadcast.
type Notifier struct {
	mu        sync.RWMutex
	nextID    int64
	listeners map[int64]chan string
}

// NewNotifier creates an empty listener registry.
func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[int64]chan string),
	}
}

// Subscribe registers a new listener and returns its handle together with
// the channel broadcast topics arrive on. The channel is closed on
// Unsubscribe.
func (n *Notifier) Subscribe() (int64, <-chan string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	ch := make(chan string, listenerBuffer)
	n.listeners[id] = ch

	slog.Debug("Listener subscribed", "listener_id", id, "listeners", len(n.listeners))
	return id, ch
}

// Unsubscribe removes a listener and closes its channel. Unknown handles are
// ignored, so it is safe to call after the connection is already gone.
func (n *Notifier) Unsubscribe(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch, ok := n.listeners[id]
	if !ok {
		return
	}
	delete(n.listeners, id)
	close(ch)

	slog.Debug("Listener unsubscribed", "listener_id", id, "listeners", len(n.listeners))
}

// Broadcast sends topic to every registered listener. A listener whose
// buffer is full is skipped; delivery to the remaining listeners always
// continues and Broadcast never reports an error.
func (n *Notifier) Broadcast(topic string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	delivered := 0
	for id, ch := range n.listeners {
		select {
		case ch <- topic:
			delivered++
		default:
			slog.Debug("Listener not keeping up, event dropped", "listener_id", id, "topic", topic)
		}
	}

	slog.Debug("Broadcast delivered", "topic", topic, "delivered", delivered, "listeners", len(n.listeners))
}

// Count returns the number of currently registered listeners.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
