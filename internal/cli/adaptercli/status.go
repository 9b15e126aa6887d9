package adaptercli

import (
	"sync"

	"github.com/iudanet/matchsync/internal/adapter"
	"github.com/iudanet/matchsync/internal/dispatch"
	"github.com/iudanet/matchsync/internal/server/handlers"
)

// statusRegistry collects the running subscriptions for the status endpoint
type statusRegistry struct {
	entries []statusEntry
	mu      sync.Mutex
}

type statusEntry struct {
	sub    *adapter.Subscription
	engine *dispatch.Engine
}

var _ handlers.StatusSource = (*statusRegistry)(nil)

func (r *statusRegistry) add(sub *adapter.Subscription, engine *dispatch.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, statusEntry{sub: sub, engine: engine})
}

// Status implements handlers.StatusSource
func (r *statusRegistry) Status() []handlers.SubscriptionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]handlers.SubscriptionStatus, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, handlers.SubscriptionStatus{
			Topic:        e.sub.Topic(),
			Subscription: e.sub.Name(),
			Mode:         e.engine.Mode().String(),
			Stats:        e.engine.Stats(),
		})
	}
	return out
}
