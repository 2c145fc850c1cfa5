package domain

import (
	"time"

	"github.com/google/uuid"
)

// Quote is a motivational quote, either built-in or fetched remotely.
type Quote struct {
	Text   string
	Author string
}

type SavedQuote struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Quote     string
	Author    string
	CreatedAt time.Time
}
