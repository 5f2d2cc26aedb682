package session

import "context"

// Identity is what a login puts into the session. It is trusted as-is on
// later requests; nothing re-validates it against storage.
type Identity struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// Flash is a one-shot notice rendered on the next page view.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type State struct {
	Identity *Identity `json:"identity,omitempty"`
	Flashes  []Flash   `json:"flashes,omitempty"`
}

// Store persists session state by opaque token. Get returns (nil, nil) for
// an unknown token.
type Store interface {
	Get(ctx context.Context, token string) (*State, error)
	Save(ctx context.Context, token string, state *State) error
	Delete(ctx context.Context, token string) error
}
