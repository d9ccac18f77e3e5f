// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "sync"

// Hub is an [ActivitySource] that fans events out to its subscribers. The
// UI emits into a Hub and guards subscribe to it.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Activity)
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]func(Activity))}
}

// Subscribe implements [ActivitySource]. The returned function is idempotent.
func (h *Hub) Subscribe(fn func(Activity)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Emit delivers a to every current subscriber.
func (h *Hub) Emit(a Activity) {
	h.mu.Lock()
	fns := make([]func(Activity), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(a)
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
