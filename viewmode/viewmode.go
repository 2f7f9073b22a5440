package viewmode

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type Mode string

const (
	Grid Mode = "grid"
	List Mode = "list"

	Default = Grid
)

var (
	ErrInvalidMode  = errors.New("invalid view mode")
	ErrNoPreference = errors.New("no view mode stored")
)

// Parse accepts exactly "grid" or "list".
func Parse(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Grid, List:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Store persists one view mode per client. Load returns ErrNoPreference
// when the client has never chosen one.
type Store interface {
	Load(ctx context.Context, clientID string) (Mode, error)
	Save(ctx context.Context, clientID string, m Mode) error
}

// Preferences is what handlers talk to. Reads never fail: anything
// other than a stored valid mode reads as the default.
type Preferences struct {
	store  Store
	logger *zap.Logger
}

func NewPreferences(store Store, logger *zap.Logger) *Preferences {
	return &Preferences{store: store, logger: logger}
}

func (p *Preferences) Get(ctx context.Context, clientID string) Mode {
	if clientID == "" {
		return Default
	}
	stored, err := p.store.Load(ctx, clientID)
	if err != nil {
		if !errors.Is(err, ErrNoPreference) {
			p.logger.Warn("view mode load failed", zap.String("client_id", clientID), zap.Error(err))
		}
		return Default
	}
	m, err := Parse(string(stored))
	if err != nil {
		p.logger.Warn("ignoring stored view mode", zap.String("client_id", clientID), zap.String("view_mode", string(stored)))
		return Default
	}
	return m
}

// Set validates raw and stores it for the client.
func (p *Preferences) Set(ctx context.Context, clientID, raw string) (Mode, error) {
	m, err := Parse(raw)
	if err != nil {
		return "", err
	}
	if clientID == "" {
		return "", errors.New("view mode: missing client id")
	}
	if err := p.store.Save(ctx, clientID, m); err != nil {
		return "", err
	}
	return m, nil
}
