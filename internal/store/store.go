package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// PreferenceStoreIface exposes per-visitor preference persistence.
// Handlers never query the DB directly; all access goes through this interface.
type PreferenceStoreIface interface {
	Load(ctx context.Context, visitorID string) (*Preferences, error)
	Save(ctx context.Context, visitorID string, p *Preferences) error
	Delete(ctx context.Context, visitorID string) error
}
