// Package session provides per-session graph storage for the HTTP API.
//
// Each browser session owns one graph and, once computed, one ranking
// result. Sessions are identified by an opaque ID carried in a cookie,
// expire after a TTL, and are kept in one of two backends:
//   - memory: In-process storage for single-instance deployments
//   - redis: Redis-backed storage for multi-instance deployments
//
// Sessions hold the serialized graph ([graphio.Document]) rather than a
// live [graph.Graph] so that both backends share one representation;
// handlers rebuild the graph on demand, which is cheap at the graph
// sizes this engine targets.
//
// # Usage
//
//	store := session.NewMemoryStore()
//
//	sess := session.New(doc, session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // Not found or expired
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/surfrank/surfrank/pkg/graphio"
	"github.com/surfrank/surfrank/pkg/rank"
)

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Result is the serializable form of a computed ranking, stored
// alongside the session's graph. Field names match the API response
// contract.
type Result struct {
	Scores     map[string]float64 `json:"scores"`
	Iterations int                `json:"iterations"`
	History    []float64          `json:"convergence_history"`
	Converged  bool               `json:"converged"`
}

// ResultFrom converts a solver result into its session form.
func ResultFrom(r *rank.Result) *Result {
	return &Result{
		Scores:     r.ByLabel(),
		Iterations: r.Iterations,
		History:    r.History,
		Converged:  r.Converged,
	}
}

// Session stores one user's graph and last computed ranking.
type Session struct {
	ID        string           `json:"id"`
	Graph     graphio.Document `json:"graph"`
	Result    *Result          `json:"result,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// New creates a session holding the given graph document.
// The ID is a fresh random UUID.
func New(doc graphio.Document, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Graph:     doc,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session, replacing any previous state for its ID.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (no-op for Redis, which expires
	// keys natively).
	Cleanup(ctx context.Context) error
}
