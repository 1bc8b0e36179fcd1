package events

import "sync"

// Entities and actions carried by change events.
const (
	EntityClient  = "client"
	EntityInvoice = "invoice"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event tells connected views that an entity changed and they should refresh.
type Event struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     uint   `json:"id"`
}

// Hub is a fire-and-forget broadcast channel. Publish never blocks: a
// subscriber whose buffer is full simply misses the event. A nil *Hub is valid
// and drops everything, so stores can run without a hub in tests.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned channel is buffered; callers
// must Unsubscribe when done.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish broadcasts e to all current subscribers without blocking.
func (h *Hub) Publish(e Event) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
			// slow listener, drop
		}
	}
}
