// Package storage persists per-user planner settings: the saved income
// strategy selection and the default planning assumptions applied to plans
// that leave parameters out.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/corpus/internal/domain"
)

// ErrNotFound is returned when a user has no saved value
var ErrNotFound = errors.New("storage: not found")

// Selection is a user's saved income strategy
type Selection struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId"`
	Strategy  domain.IncomeStrategy `json:"strategy"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// Repository stores settings per user. Implementations are safe for
// concurrent use.
type Repository interface {
	GetSelection(ctx context.Context, userID string) (*Selection, error)
	SaveSelection(ctx context.Context, userID string, strategy domain.IncomeStrategy) (*Selection, error)
	GetAssumptions(ctx context.Context, userID string) (domain.PlanningParameters, error)
	SaveAssumptions(ctx context.Context, userID string, params domain.PlanningParameters) error
	Close() error
}

// kv is the byte-level store behind a settings repository
type kv interface {
	get(ctx context.Context, key string) ([]byte, error) // ErrNotFound when absent
	set(ctx context.Context, key string, value []byte) error
	close() error
}

// settings implements Repository on top of any kv store
type settings struct {
	store kv
	now   func() time.Time
}

func newSettings(store kv) *settings {
	return &settings{store: store, now: time.Now}
}

const keyPrefix = "corpus:settings:"

func selectionKey(userID string) string   { return keyPrefix + userID + ":selection" }
func assumptionsKey(userID string) string { return keyPrefix + userID + ":assumptions" }

func checkUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("storage: user id is required")
	}
	return nil
}

func (s *settings) GetSelection(ctx context.Context, userID string) (*Selection, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	data, err := s.store.get(ctx, selectionKey(userID))
	if err != nil {
		return nil, err
	}
	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, fmt.Errorf("decode selection for %s: %w", userID, err)
	}
	return &sel, nil
}

// SaveSelection stores the strategy, keeping the selection ID across updates
func (s *settings) SaveSelection(ctx context.Context, userID string, strategy domain.IncomeStrategy) (*Selection, error) {
	if err := checkUser(userID); err != nil {
		return nil, err
	}
	if !strategy.IsValid() {
		return nil, fmt.Errorf("storage: unknown income strategy %q", strategy)
	}

	sel := &Selection{ID: uuid.NewString(), UserID: userID}
	existing, err := s.GetSelection(ctx, userID)
	switch {
	case err == nil:
		sel.ID = existing.ID
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}
	sel.Strategy = strategy
	sel.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(sel)
	if err != nil {
		return nil, fmt.Errorf("encode selection: %w", err)
	}
	if err := s.store.set(ctx, selectionKey(userID), data); err != nil {
		return nil, err
	}
	return sel, nil
}

func (s *settings) GetAssumptions(ctx context.Context, userID string) (domain.PlanningParameters, error) {
	var params domain.PlanningParameters
	if err := checkUser(userID); err != nil {
		return params, err
	}
	data, err := s.store.get(ctx, assumptionsKey(userID))
	if err != nil {
		return params, err
	}
	if err := json.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("decode assumptions for %s: %w", userID, err)
	}
	return params, nil
}

func (s *settings) SaveAssumptions(ctx context.Context, userID string, params domain.PlanningParameters) error {
	if err := checkUser(userID); err != nil {
		return err
	}
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode assumptions: %w", err)
	}
	return s.store.set(ctx, assumptionsKey(userID), data)
}

func (s *settings) Close() error {
	return s.store.close()
}

// Kind selects a repository implementation
type Kind string

const (
	KindMemory Kind = "memory"
	KindBadger Kind = "badger"
	KindRedis  Kind = "redis"
)

// Config selects and configures a repository
type Config struct {
	Kind       Kind
	BadgerPath string // empty opens an in-memory badger database
	RedisAddr  string
	Logger     *slog.Logger
}

// Open creates the configured repository
func Open(ctx context.Context, cfg Config) (Repository, error) {
	switch Kind(strings.ToLower(string(cfg.Kind))) {
	case "", KindMemory:
		return NewMemoryRepository(), nil
	case KindBadger:
		bc := DefaultBadgerConfig()
		bc.Path = cfg.BadgerPath
		bc.InMemory = cfg.BadgerPath == ""
		bc.Logger = cfg.Logger
		return NewBadgerRepository(bc)
	case KindRedis:
		return NewRedisRepository(ctx, RedisConfig{Addr: cfg.RedisAddr})
	}
	return nil, fmt.Errorf("storage: unknown store %q (want memory, badger or redis)", cfg.Kind)
}

// PlanDefaults layers a user's saved assumptions and strategy selection over
// fallback. Missing settings leave fallback in place; an empty userID
// returns it unchanged.
func PlanDefaults(ctx context.Context, repo Repository, userID string, fallback domain.PlanningParameters) (domain.PlanningParameters, error) {
	defaults := fallback
	if userID == "" {
		return defaults, nil
	}

	saved, err := repo.GetAssumptions(ctx, userID)
	switch {
	case err == nil:
		defaults = saved
	case !errors.Is(err, ErrNotFound):
		return defaults, err
	}

	sel, err := repo.GetSelection(ctx, userID)
	switch {
	case err == nil:
		defaults.IncomeStrategy = sel.Strategy
	case !errors.Is(err, ErrNotFound):
		return defaults, err
	}
	return defaults, nil
}
