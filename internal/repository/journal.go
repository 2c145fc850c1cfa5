package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

func (s *Store) InsertJournalEntry(ctx context.Context, userID uuid.UUID, content string) (*domain.JournalEntry, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO gratitude_entries (user_id, content)
		VALUES ($1, $2)
		RETURNING id, user_id, content, created_at`,
		userID, content)

	var e domain.JournalEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.Content, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}
	return &e, nil
}

// ListJournalEntries returns the newest entries first, capped at limit.
func (s *Store) ListJournalEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, content, created_at
		FROM gratitude_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteJournalEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `
		DELETE FROM gratitude_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}
