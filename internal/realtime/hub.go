// Package realtime fans inserted chat rows out to in-process subscribers.
// It is the client-facing end of the change feed: the postgres listener
// publishes every insert it is notified about, and each subscription
// receives the row unchanged.
package realtime

import (
	"sync"

	"github.com/dmaslov/campuschat-server/internal/model"
)

// Hub routes global feed inserts to all global subscribers and private
// feed inserts to the subscribers of the matching conversation. Every
// Subscribe call is independent; there is no sharing between subscribers
// of the same filter.
type Hub struct {
	mu      sync.Mutex
	nextID  uint64
	global  map[uint64]func(model.GlobalMessage)
	private map[int64]map[uint64]func(model.PrivateMessage)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		global:  make(map[uint64]func(model.GlobalMessage)),
		private: make(map[int64]map[uint64]func(model.PrivateMessage)),
	}
}

// SubscribeGlobal registers a callback for every insert into the shared
// feed and returns an idempotent unsubscribe function.
func (h *Hub) SubscribeGlobal(fn func(model.GlobalMessage)) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.global[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.global, id)
			h.mu.Unlock()
		})
	}
}

// SubscribePrivate registers a callback for inserts belonging to one
// conversation and returns an idempotent unsubscribe function.
func (h *Hub) SubscribePrivate(chatID int64, fn func(model.PrivateMessage)) func() {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	subs, ok := h.private[chatID]
	if !ok {
		subs = make(map[uint64]func(model.PrivateMessage))
		h.private[chatID] = subs
	}
	subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			if subs, ok := h.private[chatID]; ok {
				delete(subs, id)
				if len(subs) == 0 {
					delete(h.private, chatID)
				}
			}
			h.mu.Unlock()
		})
	}
}

// PublishGlobal delivers a shared feed insert to every global subscriber.
func (h *Hub) PublishGlobal(msg model.GlobalMessage) {
	h.mu.Lock()
	fns := make([]func(model.GlobalMessage), 0, len(h.global))
	for _, fn := range h.global {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(msg)
	}
}

// PublishPrivate delivers a private insert to the subscribers of its
// conversation only.
func (h *Hub) PublishPrivate(msg model.PrivateMessage) {
	h.mu.Lock()
	var fns []func(model.PrivateMessage)
	for _, fn := range h.private[msg.ChatID] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(msg)
	}
}
