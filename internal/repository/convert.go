package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

// textToEmotion converts a nullable text column to an Emotion.
func textToEmotion(t pgtype.Text) domain.Emotion {
	if !t.Valid {
		return domain.EmotionNone
	}
	e, ok := domain.ParseEmotion(t.String)
	if !ok {
		return domain.EmotionNone
	}
	return e
}

// emotionToText converts an Emotion to a nullable text column value.
func emotionToText(e domain.Emotion) pgtype.Text {
	if e == domain.EmotionNone {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: string(e), Valid: true}
}

// textToString converts a nullable text column to a plain string.
func textToString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// stringToText converts a plain string to a nullable text column value.
func stringToText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
