package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

func (s *Store) InsertMessage(ctx context.Context, m *domain.Message) error {
	if _, err := s.db.Exec(ctx, `
		INSERT INTO chat_messages (id, user_id, conversation_id, role, content, detected_emotion)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.UserID, m.ConversationID, string(m.Role), m.Content, emotionToText(m.Emotion)); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListMessages returns a conversation's messages in creation order.
func (s *Store) ListMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]domain.Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, conversation_id, role, content, detected_emotion, created_at
		FROM chat_messages
		WHERE user_id = $1 AND conversation_id = $2
		ORDER BY created_at ASC`,
		userID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var (
			m       domain.Message
			role    string
			emotion pgtype.Text
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.ConversationID, &role, &m.Content, &emotion, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Role = domain.Role(role)
		m.Emotion = textToEmotion(emotion)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
