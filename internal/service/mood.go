package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/domain"
	"github.com/shopspring/decimal"
)

// MoodStore is the durable storage slice behind mood tracking.
type MoodStore interface {
	InsertMoodEntry(ctx context.Context, userID uuid.UUID, mood domain.Emotion, intensity int, note string) (*domain.MoodEntry, error)
	ListMoodEntriesSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error)
}

type MoodService struct {
	store MoodStore
}

func NewMoodService(store MoodStore) *MoodService {
	return &MoodService{store: store}
}

// Log records a mood entry.
func (s *MoodService) Log(ctx context.Context, userID uuid.UUID, mood domain.Emotion, intensity int, note string) (*domain.MoodEntry, error) {
	if _, ok := domain.ParseEmotion(string(mood)); !ok {
		return nil, fmt.Errorf("unknown mood %q", mood)
	}
	return s.store.InsertMoodEntry(ctx, userID, mood, intensity, note)
}

// Recent returns the user's entries from the last given number of days,
// oldest first.
func (s *MoodService) Recent(ctx context.Context, userID uuid.UUID, days int) ([]domain.MoodEntry, error) {
	since := time.Now().AddDate(0, 0, -days)
	return s.store.ListMoodEntriesSince(ctx, userID, since)
}

// Stats summarizes the user's mood entries over the window.
func (s *MoodService) Stats(ctx context.Context, userID uuid.UUID, days int) (*domain.MoodStats, error) {
	entries, err := s.Recent(ctx, userID, days)
	if err != nil {
		return nil, err
	}
	return ComputeMoodStats(entries), nil
}

// ComputeMoodStats derives distribution, dominant mood, positive count and
// average intensity from a set of entries.
func ComputeMoodStats(entries []domain.MoodEntry) *domain.MoodStats {
	stats := &domain.MoodStats{
		Total:        len(entries),
		Distribution: make(map[domain.Emotion]int),
		Shares:       make(map[domain.Emotion]decimal.Decimal),
	}
	if len(entries) == 0 {
		return stats
	}

	intensitySum := decimal.Zero
	for _, e := range entries {
		stats.Distribution[e.Mood]++
		if e.Mood.Positive() {
			stats.PositiveCount++
		}
		intensitySum = intensitySum.Add(decimal.NewFromInt(int64(e.Intensity)))
	}

	total := decimal.NewFromInt(int64(len(entries)))
	stats.AverageIntensity = intensitySum.DivRound(total, 2)

	best := 0
	for mood, count := range stats.Distribution {
		stats.Shares[mood] = decimal.NewFromInt(int64(count)).DivRound(total, 4)
		if count > best {
			best = count
			stats.Dominant = mood
		}
	}
	return stats
}
