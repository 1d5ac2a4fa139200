package storage

import (
	"context"
	"sync"
)

// Hub fans out change notifications to subscribers of a collection.
// Store implementations embed a Hub and call Publish after each write.
type Hub struct {
	mu   sync.Mutex
	subs map[Collection]map[chan struct{}]struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[Collection]map[chan struct{}]struct{})}
}

// Subscribe registers a subscriber until ctx is done.
// Each channel has a buffer of one; a pending signal absorbs later ones.
func (h *Hub) Subscribe(ctx context.Context, collection Collection) <-chan struct{} {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[chan struct{}]struct{})
	}
	h.subs[collection][ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs[collection], ch)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Publish signals every subscriber of the collection without blocking.
func (h *Hub) Publish(collection Collection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of active subscribers of a collection.
func (h *Hub) Subscribers(collection Collection) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[collection])
}
