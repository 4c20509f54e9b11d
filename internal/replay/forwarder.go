package replay

import (
	"context"

	"github.com/jkalina/flowreplay/internal/flow"
)

// Forwarder routes payloads to the session owned by their 5-tuple.
type Forwarder struct {
	registry *Registry
}

// NewForwarder creates a forwarder backed by the given registry.
func NewForwarder(registry *Registry) *Forwarder {
	return &Forwarder{registry: registry}
}

// Forward looks up or creates the tuple's session and writes the full
// payload to it. Any session or write failure is fatal for the replay
// run; there is no per-session failure isolation.
func (f *Forwarder) Forward(ctx context.Context, tuple flow.FiveTuple, payload []byte) error {
	session, err := f.registry.GetOrCreate(ctx, tuple)
	if err != nil {
		return err
	}
	return session.Send(payload)
}
