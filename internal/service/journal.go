package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/config"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

// JournalStore is the durable storage slice behind the gratitude journal.
type JournalStore interface {
	InsertJournalEntry(ctx context.Context, userID uuid.UUID, content string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id uuid.UUID) error
}

type JournalService struct {
	store JournalStore
}

func NewJournalService(store JournalStore) *JournalService {
	return &JournalService{store: store}
}

func (s *JournalService) Add(ctx context.Context, userID uuid.UUID, content string) (*domain.JournalEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}
	return s.store.InsertJournalEntry(ctx, userID, content)
}

// List returns the newest entries, capped at the journal page size.
func (s *JournalService) List(ctx context.Context, userID uuid.UUID) ([]domain.JournalEntry, error) {
	return s.store.ListJournalEntries(ctx, userID, config.JournalPageSize)
}

func (s *JournalService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteJournalEntry(ctx, id)
}
