package ports

import (
	"context"

	"github.com/dictgate/dictgate/core"
)

// SessionStore maps client identities to their gate sessions. It is
// the only shared mutable state in the system.
//
// Each operation is atomic on its own; request-level atomicity (the
// whole lookup/decide/mutate sequence) is enforced by the gate
// service, which serializes requests before touching the store.
type SessionStore interface {
	// Get returns the session for clientID, reporting whether one exists.
	Get(ctx context.Context, clientID string) (core.Session, bool, error)

	// Insert stores a new session for clientID, replacing any existing one.
	Insert(ctx context.Context, clientID string, session core.Session) error

	// Update applies fn to the stored session for clientID. It returns
	// core.ErrSessionNotFound if no session exists.
	Update(ctx context.Context, clientID string, fn func(*core.Session)) error

	// Remove deletes the session for clientID. Removing an absent
	// session is not an error.
	Remove(ctx context.Context, clientID string) error
}
