package workflow

import "sync"

// reactionBuffer bounds how many undelivered reactions a prompt can queue.
const reactionBuffer = 16

// Registry routes reaction events from the gateway to in-flight confirmations
// keyed by their prompt message ID.
type Registry struct {
	mu      sync.Mutex
	pending map[string]chan Reaction
}

func NewRegistry() *Registry {
	return &Registry{pending: make(map[string]chan Reaction)}
}

// Register creates a reaction channel for a prompt message. The caller must
// Unregister when the confirmation reaches a terminal state.
func (r *Registry) Register(messageID string) <-chan Reaction {
	ch := make(chan Reaction, reactionBuffer)
	r.mu.Lock()
	r.pending[messageID] = ch
	r.mu.Unlock()
	return ch
}

// Unregister removes a prompt's channel. Reactions arriving afterwards are
// dropped by Dispatch.
func (r *Registry) Unregister(messageID string) {
	r.mu.Lock()
	delete(r.pending, messageID)
	r.mu.Unlock()
}

// Dispatch forwards a reaction to the confirmation watching the message, if
// any. It never blocks; if the buffer is full the reaction is dropped.
func (r *Registry) Dispatch(messageID string, reaction Reaction) bool {
	r.mu.Lock()
	ch, ok := r.pending[messageID]
	r.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case ch <- reaction:
		return true
	default:
		return false
	}
}

// PendingCount reports how many confirmations are currently awaiting a
// reaction.
func (r *Registry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
