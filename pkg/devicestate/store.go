// Package devicestate keeps ephemeral per-device runtime state: last
// heartbeat, what the player reports it is showing, and its software
// version. Entries are TTL'd, so a device that stops checking in simply
// ages out. Durable device identity lives in the relational store; this
// data is advisory and safe to lose.
package devicestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrStateNotFound is returned when a device has no recorded state.
var ErrStateNotFound = errors.New("device state not found")

// State is what a player last reported about itself.
type State struct {
	DeviceID      string    `json:"device_id"`
	LastSeenAt    time.Time `json:"last_seen_at"`
	PlayerVersion string    `json:"player_version,omitempty"`

	// PlaylistID or LayoutID is what the device says it is currently
	// showing, which may lag behind its assignment.
	PlaylistID string `json:"playlist_id,omitempty"`
	LayoutID   string `json:"layout_id,omitempty"`

	IPAddress string `json:"ip_address,omitempty"`
}

// Config holds configuration for the device state store.
type Config struct {
	// Path is the Badger data directory. Ignored when InMemory is set.
	Path string

	// InMemory runs Badger without persistence, for tests.
	InMemory bool

	// TTL is how long a state entry survives without a new heartbeat.
	// Default: 24h.
	TTL time.Duration
}

// Store is a Badger-backed device state store.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

const defaultTTL = 24 * time.Hour

// Database key namespace:
//
// Data Type     Prefix  Key Format      Value Type
// ================================================
// Device state  "ds:"   ds:<deviceID>   State (JSON)
const prefixState = "ds:"

func keyState(deviceID string) []byte {
	return []byte(prefixState + deviceID)
}

// New opens the device state store.
func New(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("device state path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Badger's default logger writes to stderr outside our log pipeline
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open device state store: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Store{db: db, ttl: ttl}, nil
}

// Record stores the state reported in a heartbeat, resetting its TTL.
func (s *Store) Record(ctx context.Context, state State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if state.DeviceID == "" {
		return errors.New("device id is required")
	}
	if state.LastSeenAt.IsZero() {
		state.LastSeenAt = time.Now().UTC()
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode device state: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(keyState(state.DeviceID), data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
}

// Get returns the last reported state for a device.
// Returns ErrStateNotFound when the device never checked in or its entry
// has expired.
func (s *Store) Get(ctx context.Context, deviceID string) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var state *State
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyState(deviceID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrStateNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			var decoded State
			if err := json.Unmarshal(val, &decoded); err != nil {
				return fmt.Errorf("failed to decode device state: %w", err)
			}
			state = &decoded
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return state, nil
}

// Delete drops a device's state, if any.
func (s *Store) Delete(ctx context.Context, deviceID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(keyState(deviceID))
	})
}

// Healthcheck verifies the underlying database responds.
func (s *Store) Healthcheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return errors.New("device state store is closed")
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
