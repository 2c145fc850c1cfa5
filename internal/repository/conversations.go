package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

func (s *Store) CreateConversation(ctx context.Context, userID uuid.UUID, title string) (*domain.Conversation, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO conversations (user_id, title)
		VALUES ($1, $2)
		RETURNING id, user_id, title, created_at, updated_at`,
		userID, title)

	var c domain.Conversation
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return &c, nil
}

func (s *Store) ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, title, created_at, updated_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (s *Store) UpdateConversationTitle(ctx context.Context, id uuid.UUID, title string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE conversations SET title = $2, updated_at = now() WHERE id = $1`,
		id, title)
	if err != nil {
		return fmt.Errorf("update conversation title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}

// TouchConversation bumps updated_at after a message insert.
func (s *Store) TouchConversation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `
		UPDATE conversations SET updated_at = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}

// DeleteConversation removes a conversation; its messages cascade.
func (s *Store) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `
		DELETE FROM conversations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return nil
}
