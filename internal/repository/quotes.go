package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

func (s *Store) InsertSavedQuote(ctx context.Context, userID uuid.UUID, quote, author string) (*domain.SavedQuote, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO saved_quotes (user_id, quote, author)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, quote, author, created_at`,
		userID, quote, author)

	var q domain.SavedQuote
	if err := row.Scan(&q.ID, &q.UserID, &q.Quote, &q.Author, &q.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert saved quote: %w", err)
	}
	return &q, nil
}

func (s *Store) ListSavedQuotes(ctx context.Context, userID uuid.UUID) ([]domain.SavedQuote, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, quote, author, created_at
		FROM saved_quotes
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list saved quotes: %w", err)
	}
	defer rows.Close()

	var quotes []domain.SavedQuote
	for rows.Next() {
		var q domain.SavedQuote
		if err := rows.Scan(&q.ID, &q.UserID, &q.Quote, &q.Author, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saved quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (s *Store) DeleteSavedQuote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `
		DELETE FROM saved_quotes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete saved quote: %w", err)
	}
	return nil
}
