// Package replay maintains one outbound collector connection per
// original transport session and forwards payloads over it.
package replay

import (
	"context"
	"fmt"
	"net"

	"github.com/jkalina/flowreplay/internal/flow"
	"github.com/jkalina/flowreplay/internal/logging"
)

// Session is one live outbound connection to the collector, created
// for a single original 5-tuple and kept open for the process
// lifetime.
type Session struct {
	Tuple flow.FiveTuple
	Proto flow.Protocol
	conn  net.Conn
}

// Send writes the payload as one logical unit. On a stream transport
// net.Conn.Write only returns once every byte is accepted or the
// connection fails, so payload boundaries are never split by a short
// write; on a datagram transport the payload goes out as a single
// datagram.
func (s *Session) Send(payload []byte) error {
	if _, err := s.conn.Write(payload); err != nil {
		return fmt.Errorf("write to collector over %s: %w", s.Proto, err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Session) Close() error {
	return s.conn.Close()
}

// Registry owns the 5-tuple to session mapping. It is not safe for
// concurrent use; the replay driver is single-threaded, which also
// serializes all frames of a tuple onto its session in capture order.
type Registry struct {
	target   Target
	log      *logging.Logger
	dial     func(context.Context, Target) (net.Conn, error)
	sessions map[flow.FiveTuple]*Session
	created  int
}

// NewRegistry creates an empty registry that connects new sessions to
// the given collector target.
func NewRegistry(target Target, log *logging.Logger) *Registry {
	return &Registry{
		target:   target,
		log:      log,
		dial:     dialTarget,
		sessions: make(map[flow.FiveTuple]*Session),
	}
}

// GetOrCreate returns the session for the tuple, opening a new
// connection on first sight. A failed connection attempt leaves no
// state behind, so the tuple stays unknown to the registry.
func (r *Registry) GetOrCreate(ctx context.Context, tuple flow.FiveTuple) (*Session, error) {
	if session, ok := r.sessions[tuple]; ok {
		return session, nil
	}

	r.log.Verbose("Creating a new Transport Session for %s", tuple)
	if tuple.Proto != r.target.Proto {
		// The collector applies different framing rules per transport,
		// so replaying over the other one may be rejected. Checked once
		// at session creation, matching the original capture protocol.
		r.log.Warn("Original flow packets exported over %s (%s:%d -> %s:%d) are now being sent over %s. "+
			"Collector could reject these flows due to different formatting rules!",
			tuple.Proto, tuple.SrcIP, tuple.SrcPort, tuple.DstIP, tuple.DstPort, r.target.Proto)
	}

	conn, err := r.dial(ctx, r.target)
	if err != nil {
		return nil, err
	}
	session := &Session{
		Tuple: tuple,
		Proto: r.target.Proto,
		conn:  conn,
	}
	r.sessions[tuple] = session
	r.created++
	return session, nil
}

// Created returns how many sessions have been opened.
func (r *Registry) Created() int {
	return r.created
}

// CloseAll closes every open session. Used at teardown only; sessions
// are never evicted while the replay runs.
func (r *Registry) CloseAll() {
	for _, session := range r.sessions {
		_ = session.Close()
	}
}
