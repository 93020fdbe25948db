package cycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"innerlog/internal/storage"
)

const dataKeyFmt = "cycledata:%d"

// StorageKey is the blob-store key a user's cycle data lives under.
// Account deletion uses it to purge the row.
func StorageKey(userID uint) string { return fmt.Sprintf(dataKeyFmt, userID) }

// DefaultStaleness is how old a stored analysis may get before a read
// triggers a full recompute.
const DefaultStaleness = 7 * 24 * time.Hour

// Service owns the daily factor log store and the derived correlation
// state for each user. Like the profile service, it serializes its
// read-modify-write cycles per user; a racing re-analysis is harmless
// because both runs recompute from the same log history.
type Service struct {
	store     storage.Store
	staleness time.Duration
	now       func() time.Time
	mu        storage.KeyedMutex
}

func NewService(store storage.Store, staleness time.Duration) *Service {
	if staleness <= 0 {
		staleness = DefaultStaleness
	}
	return &Service{store: store, staleness: staleness, now: time.Now}
}

// SetClock overrides the time source (for tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// LogToday merges a partial update into today's log, creating it on
// first write. Food tags union, symptoms merge per key, scalars replace
// only when the update carries them.
func (s *Service) LogToday(ctx context.Context, userID uint, update LogUpdate) (*DailyLog, error) {
	unlock := s.mu.Lock(userID)
	defer unlock()

	data := s.loadData(ctx, userID)
	date := s.now().Format("2006-01-02")

	entry, ok := data.Logs[date]
	if !ok {
		entry = &DailyLog{Date: date}
		data.Logs[date] = entry
	}
	mergeUpdate(entry, update)

	if err := s.saveData(ctx, userID, data); err != nil {
		return nil, err
	}
	return entry, nil
}

// CurrentInsights returns the stored insight set, recomputing it first
// when the analysis is stale. Below the basic cycle milestone the report
// carries no insights, only the distance to the next milestone.
func (s *Service) CurrentInsights(ctx context.Context, userID uint) (*InsightsReport, error) {
	unlock := s.mu.Lock(userID)
	defer unlock()

	data := s.loadData(ctx, userID)

	if s.now().Sub(data.LastAnalyzed) > s.staleness {
		if err := s.reanalyze(ctx, userID, data); err != nil {
			return nil, err
		}
	}

	report := &InsightsReport{
		CyclesTracked:   data.CyclesTracked,
		CanShowInsights: data.CyclesTracked >= MinCyclesBasic,
	}
	if !report.CanShowInsights {
		remaining := MinCyclesBasic - data.CyclesTracked
		report.NextMilestone = fmt.Sprintf("%d more cycle(s) of tracking unlocks your first insights", remaining)
		return report, nil
	}

	report.Insights = data.Insights
	if data.CyclesTracked < MinCyclesPersonalized {
		remaining := MinCyclesPersonalized - data.CyclesTracked
		report.NextMilestone = fmt.Sprintf("%d more cycle(s) unlocks pre-period suggestions", remaining)
	}
	return report, nil
}

// Suggestions returns the forward-looking pre-period suggestions. They
// require the personalized milestone on top of the usual insight gates.
func (s *Service) Suggestions(ctx context.Context, userID uint, daysUntilPeriod int, phase Phase) ([]string, error) {
	unlock := s.mu.Lock(userID)
	defer unlock()

	data := s.loadData(ctx, userID)

	if s.now().Sub(data.LastAnalyzed) > s.staleness {
		if err := s.reanalyze(ctx, userID, data); err != nil {
			return nil, err
		}
	}

	if data.CyclesTracked < MinCyclesPersonalized {
		return nil, nil
	}
	return CycleSuggestions(data.Correlations, daysUntilPeriod, phase), nil
}

// reanalyze recomputes cycles, correlations and insights from the full
// log history and persists the refreshed blob. The derived set is
// replaced wholesale.
func (s *Service) reanalyze(ctx context.Context, userID uint, data *Data) error {
	logs := SortedLogs(data.Logs)
	data.CyclesTracked = CountCycles(logs)

	if data.CyclesTracked >= MinCyclesBasic {
		data.Correlations = Analyze(logs)
		data.Insights = SynthesizeInsights(data.Correlations)
	} else {
		data.Correlations = nil
		data.Insights = nil
	}
	data.LastAnalyzed = s.now()

	log.Printf("[Cycle] re-analyzed user %d: %d logs, %d cycles, %d correlations, %d insights",
		userID, len(logs), data.CyclesTracked, len(data.Correlations), len(data.Insights))

	return s.saveData(ctx, userID, data)
}

func mergeUpdate(entry *DailyLog, update LogUpdate) {
	for _, tag := range update.FoodTags {
		if !hasTag(entry, tag) {
			entry.FoodTags = append(entry.FoodTags, tag)
		}
	}
	if len(update.Symptoms) > 0 {
		if entry.Symptoms == nil {
			entry.Symptoms = map[string]int{}
		}
		for k, v := range update.Symptoms {
			entry.Symptoms[k] = v
		}
	}
	if update.Sleep != nil {
		entry.Sleep = update.Sleep
	}
	if update.ExerciseMinutes != nil {
		entry.ExerciseMinutes = *update.ExerciseMinutes
	}
	if update.ExerciseType != nil {
		entry.ExerciseType = *update.ExerciseType
	}
	if update.MoodScore != nil {
		entry.MoodScore = *update.MoodScore
	}
	if update.StressLevel != nil {
		entry.StressLevel = *update.StressLevel
	}
	if update.FlowLevel != nil {
		entry.FlowLevel = *update.FlowLevel
	}
	if update.Phase != nil {
		entry.Phase = *update.Phase
	}
}

func (s *Service) loadData(ctx context.Context, userID uint) *Data {
	blob, err := s.store.Get(ctx, StorageKey(userID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[Cycle] WARNING: failed to load data for user %d, starting fresh: %v", userID, err)
		}
		return NewData()
	}
	var data Data
	if err := json.Unmarshal(blob, &data); err != nil {
		log.Printf("[Cycle] WARNING: corrupt cycle blob for user %d, starting fresh: %v", userID, err)
		return NewData()
	}
	if data.Logs == nil {
		data.Logs = map[string]*DailyLog{}
	}
	return &data
}

func (s *Service) saveData(ctx context.Context, userID uint, data *Data) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode cycle data: %w", err)
	}
	if err := s.store.Set(ctx, StorageKey(userID), blob); err != nil {
		return fmt.Errorf("failed to persist cycle data: %w", err)
	}
	return nil
}
