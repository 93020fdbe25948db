package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"innerlog/internal/patterns"
	"innerlog/internal/storage"
)

const profileKeyFmt = "profile:%d"
const contextCacheKeyFmt = "profilectx:%d:%d"

// StorageKey is the blob-store key a user's profile lives under. Account
// deletion uses it to purge the row.
func StorageKey(userID uint) string { return fmt.Sprintf(profileKeyFmt, userID) }

// Service owns the read-modify-write cycle for one storage-backed profile
// per user. A single mutex serializes updates so overlapping calls from
// rapid UI interaction cannot interleave load/mutate/persist cycles.
type Service struct {
	store    storage.Store
	rdb      *redis.Client // optional context cache; nil disables caching
	cacheTTL time.Duration
	rng      *rand.Rand
	now      func() time.Time
	mu       storage.KeyedMutex
}

func NewService(store storage.Store, rdb *redis.Client, cacheTTL time.Duration, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		store:    store,
		rdb:      rdb,
		cacheTTL: cacheTTL,
		rng:      rng,
		now:      time.Now,
	}
}

// SetClock overrides the time source (for tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// AnalyzeEntry runs detection on one journal entry, folds the result into
// the stored profile, persists it, and returns the detection plus alerts.
// A corrupt or missing stored profile falls back to the empty default; a
// failed write is propagated because silently losing an update would break
// the monotonic counters.
func (s *Service) AnalyzeEntry(ctx context.Context, userID uint, text string) (*EntryAnalysis, error) {
	unlock := s.mu.Lock(userID)
	defer unlock()

	p := s.loadProfile(ctx, userID)
	det := patterns.Detect(text)
	now := s.now()

	Update(p, det, text, now)

	if err := s.saveProfile(ctx, userID, p); err != nil {
		return nil, err
	}

	return &EntryAnalysis{
		EntryID:   uuid.New().String(),
		Timestamp: now,
		Detection: det,
		Alerts:    SynthesizeAlerts(det, s.rng),
	}, nil
}

// AnalyzeDraft runs detection and alert synthesis without touching the
// stored profile. Used for live feedback while an entry is being typed.
func (s *Service) AnalyzeDraft(text string) (patterns.Result, []Alert) {
	det := patterns.Detect(text)
	return det, SynthesizeAlerts(det, s.rng)
}

// GetProfile returns the current stored profile (the empty default if
// nothing has been written yet).
func (s *Service) GetProfile(ctx context.Context, userID uint) *Profile {
	unlock := s.mu.Lock(userID)
	defer unlock()
	return s.loadProfile(ctx, userID)
}

// Context renders the compressed profile summary. Results are cached in
// redis keyed by entry count, since the rendering is pure per profile
// revision and gets requested on every downstream generation call.
func (s *Service) Context(ctx context.Context, userID uint) (string, error) {
	unlock := s.mu.Lock(userID)
	p := s.loadProfile(ctx, userID)
	unlock()

	cacheKey := fmt.Sprintf(contextCacheKeyFmt, userID, p.EntryCount)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	rendered := CompressedContext(p)

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, cacheKey, rendered, s.cacheTTL).Err(); err != nil {
			log.Printf("[Profile] WARNING: failed to cache context for user %d: %v", userID, err)
		}
	}
	return rendered, nil
}

func (s *Service) loadProfile(ctx context.Context, userID uint) *Profile {
	blob, err := s.store.Get(ctx, StorageKey(userID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[Profile] WARNING: failed to load profile %d, starting fresh: %v", userID, err)
		}
		return NewProfile()
	}
	var p Profile
	if err := json.Unmarshal(blob, &p); err != nil {
		log.Printf("[Profile] WARNING: corrupt profile blob for user %d, starting fresh: %v", userID, err)
		return NewProfile()
	}
	if p.Perma == nil {
		p.Perma = NewProfile().Perma
	}
	return &p
}

func (s *Service) saveProfile(ctx context.Context, userID uint, p *Profile) error {
	blob, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.store.Set(ctx, StorageKey(userID), blob); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	return nil
}
