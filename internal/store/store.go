// Package store persists named JSON values in a durable string-keyed backend.
//
// Reads never fail: a missing, unreadable or corrupt value yields the caller's default.
// Writes overwrite the previous value in full. Keys are independent; there are no
// multi-key transactions.
package store

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	applog "prestige/internal/log"
)

const (
	CartKey   = "prestigeBlissCart"
	UserKey   = "prestigeBlissUser"
	ThemeKey  = "prestigeTheme"
	OrdersKey = "prestigeBlissOrders"
)

// Backend is the raw key-value storage.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	backend Backend
	prefix  string
}

func New(b Backend) *Store { return &Store{backend: b} }

// Namespace scopes every key to one client. Namespaces do not nest.
func (s *Store) Namespace(id string) *Store {
	return &Store{backend: s.backend, prefix: id + "/"}
}

func (s *Store) key(k string) string { return s.prefix + k }

// LoadRaw returns the stored string as-is.
func (s *Store) LoadRaw(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.backend.Get(ctx, s.key(key))
	if err != nil {
		applog.Warn(nil, "store.load.fail", err, map[string]any{"key": s.key(key)})
		return "", false
	}
	return v, ok
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.key(key)); err != nil {
		return errors.Wrapf(err, "remove %s", key)
	}
	return nil
}

// Load decodes the value under key, or returns def.
func Load[T any](ctx context.Context, s *Store, key string, def T) T {
	raw, ok := s.LoadRaw(ctx, key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		applog.Warn(nil, "store.load.corrupt", err, map[string]any{"key": s.key(key)})
		return def
	}
	return v
}

// Save encodes v as JSON and replaces whatever was stored under key.
func Save[T any](ctx context.Context, s *Store, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	if err := s.backend.Set(ctx, s.key(key), string(b)); err != nil {
		return errors.Wrapf(err, "save %s", key)
	}
	return nil
}
