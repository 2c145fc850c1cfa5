package domain

import (
	"time"

	"github.com/google/uuid"
)

type JournalEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
}
