package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"hiremind-backend/internal/generate"
)

// SlotKey names the single record holding the last generation.
const SlotKey = "hiremind_last_generated"

// Saved is the last generation mirrored to local storage.
type Saved struct {
	Content   string        `json:"content"`
	Type      generate.Type `json:"type"`
	FormData  Form          `json:"formData"`
	Timestamp time.Time     `json:"timestamp"`
}

// SameDay reports whether s was saved on the same local calendar day as now.
func (s Saved) SameDay(now time.Time) bool {
	y1, m1, d1 := s.Timestamp.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SlotStore persists one Saved record, overwritten on every Save.
type SlotStore interface {
	Save(ctx context.Context, s Saved) error
	// Load returns ok=false when nothing has been saved.
	Load(ctx context.Context) (Saved, bool, error)
}

// MemorySlotStore keeps the slot in process memory.
type MemorySlotStore struct {
	mu    sync.Mutex
	saved *Saved
}

func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{}
}

func (m *MemorySlotStore) Save(ctx context.Context, s Saved) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := s
	m.saved = &cp
	return nil
}

func (m *MemorySlotStore) Load(ctx context.Context) (Saved, bool, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return Saved{}, false, nil
	}
	return *m.saved, true, nil
}

// SQLiteSlotStore keeps the slot as a JSON value in the slots table.
type SQLiteSlotStore struct {
	DB  *sql.DB
	Key string
	now func() time.Time
}

func NewSQLiteSlotStore(db *sql.DB) *SQLiteSlotStore {
	return &SQLiteSlotStore{DB: db, Key: SlotKey, now: time.Now}
}

func (s *SQLiteSlotStore) Save(ctx context.Context, saved Saved) error {
	value, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("encode slot: %w", err)
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.key(), value, s.clock().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save slot[%s]: %w", s.key(), err)
	}
	return nil
}

func (s *SQLiteSlotStore) Load(ctx context.Context) (Saved, bool, error) {
	var value []byte
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, s.key()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return Saved{}, false, nil
	}
	if err != nil {
		return Saved{}, false, fmt.Errorf("failed to load slot[%s]: %w", s.key(), err)
	}
	var saved Saved
	if err := json.Unmarshal(value, &saved); err != nil {
		return Saved{}, false, fmt.Errorf("decode slot[%s]: %w", s.key(), err)
	}
	return saved, true, nil
}

func (s *SQLiteSlotStore) key() string {
	if s.Key == "" {
		return SlotKey
	}
	return s.Key
}

func (s *SQLiteSlotStore) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
