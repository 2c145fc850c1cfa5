package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

func entry(mood domain.Emotion, intensity int) domain.MoodEntry {
	return domain.MoodEntry{Mood: mood, Intensity: intensity}
}

func TestComputeMoodStats(t *testing.T) {
	entries := []domain.MoodEntry{
		entry(domain.EmotionHappy, 6),
		entry(domain.EmotionHappy, 4),
		entry(domain.EmotionSad, 5),
		entry(domain.EmotionCalm, 7),
	}

	stats := ComputeMoodStats(entries)
	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.Dominant != domain.EmotionHappy {
		t.Errorf("Dominant = %q, want happy", stats.Dominant)
	}
	if stats.PositiveCount != 3 {
		t.Errorf("PositiveCount = %d, want 3", stats.PositiveCount)
	}
	if got := stats.AverageIntensity.String(); got != "5.5" {
		t.Errorf("AverageIntensity = %s, want 5.5", got)
	}
	if got := stats.Distribution[domain.EmotionHappy]; got != 2 {
		t.Errorf("Distribution[happy] = %d, want 2", got)
	}
	if got := stats.Shares[domain.EmotionHappy].String(); got != "0.5" {
		t.Errorf("Shares[happy] = %s, want 0.5", got)
	}
	if got := stats.Shares[domain.EmotionSad].String(); got != "0.25" {
		t.Errorf("Shares[sad] = %s, want 0.25", got)
	}
}

func TestComputeMoodStatsEmpty(t *testing.T) {
	stats := ComputeMoodStats(nil)
	if stats.Total != 0 || stats.PositiveCount != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Dominant != domain.EmotionNone {
		t.Errorf("Dominant = %q, want none", stats.Dominant)
	}
	if !stats.AverageIntensity.IsZero() {
		t.Errorf("AverageIntensity = %s, want 0", stats.AverageIntensity)
	}
}

func TestMoodLogRejectsUnknownMood(t *testing.T) {
	svc := NewMoodService(&fakeStore{})
	if _, err := svc.Log(context.Background(), uuid.New(), domain.Emotion("furious"), 5, ""); err == nil {
		t.Error("expected error for unknown mood")
	}
}

func TestMoodRecentWindow(t *testing.T) {
	store := &fakeStore{}
	userID := uuid.New()
	store.moods = []domain.MoodEntry{
		{UserID: userID, Mood: domain.EmotionHappy, CreatedAt: time.Now().AddDate(0, 0, -10)},
		{UserID: userID, Mood: domain.EmotionCalm, CreatedAt: time.Now().AddDate(0, 0, -1)},
	}

	svc := NewMoodService(store)
	got, err := svc.Recent(context.Background(), userID, 7)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Mood != domain.EmotionCalm {
		t.Errorf("entries = %v", got)
	}
}
