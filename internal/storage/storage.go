package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotFound is returned by Get when no blob exists under the key.
// Callers are expected to fall back to a default value rather than fail.
var ErrNotFound = errors.New("storage: key not found")

// Store is the key-value contract the analysis services persist through.
// Values are opaque JSON blobs, replaced wholesale on every Set.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
}

// Record is one named state blob.
type Record struct {
	Key       string         `gorm:"primaryKey;size:64" json:"key"`
	Blob      datatypes.JSON `gorm:"not null" json:"blob"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Record) TableName() string {
	return "state_blobs"
}

// GormStore persists blobs in a single gorm-managed table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load blob %q: %w", key, err)
	}
	return []byte(rec.Blob), nil
}

func (s *GormStore) Set(ctx context.Context, key string, blob []byte) error {
	rec := Record{Key: key, Blob: datatypes.JSON(blob)}
	err := s.db.WithContext(ctx).
		Where(Record{Key: key}).
		Assign(map[string]interface{}{"blob": datatypes.JSON(blob), "updated_at": time.Now()}).
		FirstOrCreate(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save blob %q: %w", key, err)
	}
	return nil
}
