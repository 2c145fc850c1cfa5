package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

func (s *Store) InsertMoodEntry(ctx context.Context, userID uuid.UUID, mood domain.Emotion, intensity int, note string) (*domain.MoodEntry, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO mood_entries (user_id, mood, intensity, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, mood, intensity, note, created_at`,
		userID, string(mood), intensity, stringToText(note))

	var (
		e        domain.MoodEntry
		moodText string
		noteText pgtype.Text
	)
	if err := row.Scan(&e.ID, &e.UserID, &moodText, &e.Intensity, &noteText, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert mood entry: %w", err)
	}
	e.Mood = domain.Emotion(moodText)
	e.Note = textToString(noteText)
	return &e, nil
}

// ListMoodEntriesSince returns the user's mood entries created at or after
// the given time, oldest first.
func (s *Store) ListMoodEntriesSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, mood, intensity, note, created_at
		FROM mood_entries
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at ASC`,
		userID, since)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.MoodEntry
	for rows.Next() {
		var (
			e        domain.MoodEntry
			moodText string
			noteText pgtype.Text
		)
		if err := rows.Scan(&e.ID, &e.UserID, &moodText, &e.Intensity, &noteText, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		e.Mood = domain.Emotion(moodText)
		e.Note = textToString(noteText)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
