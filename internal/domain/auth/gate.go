package auth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"staffdesk/internal/platform/kv"
)

// Gate holds the single signed-in session. Its state is mirrored to a kv.Store
// so a restart restores it. A non-empty token means Authenticated.
type Gate struct {
	mu       sync.RWMutex
	store    kv.Store
	identity *SessionIdentity
	token    string
	onChange func(authenticated bool)
}

type GateOption func(*Gate)

// WithStateObserver registers fn to be called with the new state after restore,
// login and logout.
func WithStateObserver(fn func(authenticated bool)) GateOption {
	return func(g *Gate) {
		g.onChange = fn
	}
}

// NewGate restores the session from store. A stored identity that cannot be
// decoded is discarded with a warning; only storage failures are returned.
func NewGate(ctx context.Context, store kv.Store, opts ...GateOption) (*Gate, error) {
	g := &Gate{store: store}
	for _, opt := range opts {
		opt(g)
	}

	token, _, err := store.Get(ctx, KeyToken)
	if err != nil {
		return nil, fmt.Errorf("restore session token: %w", err)
	}
	raw, ok, err := store.Get(ctx, KeyIdentity)
	if err != nil {
		return nil, fmt.Errorf("restore session identity: %w", err)
	}
	if ok {
		var identity SessionIdentity
		if err := json.Unmarshal([]byte(raw), &identity); err != nil {
			slog.Warn("discarding malformed session identity", "err", err)
		} else {
			g.identity = &identity
		}
	}
	g.token = token

	g.notify()
	return g, nil
}

// Login persists identity and token, then marks the gate Authenticated.
// Logging in while already Authenticated replaces the session. If the token
// cannot be written the previous identity blob is put back, so storage keeps
// describing the session still held in memory.
func (g *Gate) Login(ctx context.Context, identity SessionIdentity, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	blob, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistIdentity, err)
	}

	g.mu.Lock()
	err = g.persist(ctx, string(blob), token)
	if err == nil {
		g.identity = &identity
		g.token = token
	}
	g.mu.Unlock()
	if err != nil {
		return err
	}

	g.notify()
	return nil
}

// persist writes the identity blob and then the token. Callers hold g.mu.
func (g *Gate) persist(ctx context.Context, blob, token string) error {
	prev, hadPrev, err := g.store.Get(ctx, KeyIdentity)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistIdentity, err)
	}
	if err := g.store.Set(ctx, KeyIdentity, blob); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistIdentity, err)
	}
	if err := g.store.Set(ctx, KeyToken, token); err != nil {
		var rollbackErr error
		if hadPrev {
			rollbackErr = g.store.Set(ctx, KeyIdentity, prev)
		} else {
			rollbackErr = g.store.Remove(ctx, KeyIdentity)
		}
		if rollbackErr != nil {
			slog.Error("restore previous session identity failed", "err", rollbackErr)
		}
		return errors.Join(fmt.Errorf("persist session token: %w", err), rollbackErr)
	}
	return nil
}

// Logout clears the session in memory and in storage. Logging out while
// Anonymous is a no-op apart from the storage removals.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	g.identity = nil
	g.token = ""
	errIdentity := g.store.Remove(ctx, KeyIdentity)
	errToken := g.store.Remove(ctx, KeyToken)
	g.mu.Unlock()

	g.notify()
	if err := errors.Join(errIdentity, errToken); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (g *Gate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token != ""
}

func (g *Gate) Identity() (SessionIdentity, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.identity == nil {
		return SessionIdentity{}, false
	}
	return *g.identity, true
}

func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// TokenMatches reports whether candidate equals the current token. Always false while Anonymous.
func (g *Gate) TokenMatches(candidate string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.token == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.token), []byte(candidate)) == 1
}

func (g *Gate) notify() {
	if g.onChange != nil {
		g.onChange(g.IsAuthenticated())
	}
}
