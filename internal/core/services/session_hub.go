package services

import "sync"

// sessionHub fans sign-out notifications out to the observers of a session
// within this process.
type sessionHub struct {
	mu        sync.Mutex
	observers map[string]map[chan struct{}]struct{}
}

func newSessionHub() *sessionHub {
	return &sessionHub{observers: map[string]map[chan struct{}]struct{}{}}
}

// subscribe returns a channel closed when tokenID signs out, and a func to stop listening.
func (h *sessionHub) subscribe(tokenID string) (<-chan struct{}, func()) {
	ch := make(chan struct{})
	h.mu.Lock()
	if h.observers[tokenID] == nil {
		h.observers[tokenID] = map[chan struct{}]struct{}{}
	}
	h.observers[tokenID][ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.observers[tokenID]; ok {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.observers, tokenID)
			}
		}
	}
}

// signOut wakes every observer of tokenID.
func (h *sessionHub) signOut(tokenID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.observers[tokenID] {
		close(ch)
	}
	delete(h.observers, tokenID)
}
