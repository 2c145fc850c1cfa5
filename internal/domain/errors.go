package domain

import "errors"

var (
	ErrEmptyMessage         = errors.New("empty message")
	ErrActiveTurn           = errors.New("a turn is already in flight")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNoActiveConversation = errors.New("no active conversation")
	ErrMessageNotFound      = errors.New("message not found")
	ErrQuoteAlreadySaved    = errors.New("quote already saved")
	ErrSpeechUnsupported    = errors.New("speech capability unavailable")
	ErrAlreadyListening     = errors.New("voice capture already active")
)
