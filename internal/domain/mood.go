package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MoodEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Mood      Emotion
	Intensity int
	Note      string
	CreatedAt time.Time
}

// MoodStats summarizes mood entries over a reporting window.
type MoodStats struct {
	Total            int
	Distribution     map[Emotion]int
	Shares           map[Emotion]decimal.Decimal
	Dominant         Emotion
	PositiveCount    int
	AverageIntensity decimal.Decimal
}
