package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

// ConversationStore is the slice of durable storage the conversation state
// machine depends on.
type ConversationStore interface {
	CreateConversation(ctx context.Context, userID uuid.UUID, title string) (*domain.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	UpdateConversationTitle(ctx context.Context, id uuid.UUID, title string) error
	TouchConversation(ctx context.Context, id uuid.UUID) error
	DeleteConversation(ctx context.Context, id uuid.UUID) error
	InsertMessage(ctx context.Context, m *domain.Message) error
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]domain.Message, error)
}

// ConversationService owns the set of conversations and the ordered message
// list of the active one, mediating optimistic local edits against durable
// persistence. At most one conversation is active; the message list always
// belongs to it or is empty.
//
// All mutations happen from the single turn-driving goroutine; the
// orchestrator's single-flight guard rules out concurrent edits.
type ConversationService struct {
	store ConversationStore

	conversations []domain.Conversation
	active        uuid.UUID // uuid.Nil means none selected
	messages      []domain.Message
}

func NewConversationService(store ConversationStore) *ConversationService {
	return &ConversationService{store: store}
}

// Load refreshes the in-memory conversation list from storage, most
// recently updated first.
func (s *ConversationService) Load(ctx context.Context, userID uuid.UUID) error {
	conversations, err := s.store.ListConversations(ctx, userID)
	if err != nil {
		return fmt.Errorf("load conversations: %w", err)
	}
	s.conversations = conversations
	return nil
}

// Conversations returns a snapshot of the in-memory conversation list.
func (s *ConversationService) Conversations() []domain.Conversation {
	out := make([]domain.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Active returns the active conversation id, or uuid.Nil when none is
// selected.
func (s *ConversationService) Active() uuid.UUID {
	return s.active
}

// Messages returns a snapshot of the active conversation's message list.
func (s *ConversationService) Messages() []domain.Message {
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Create persists a new conversation, prepends it to the in-memory list,
// makes it active and clears the message list.
func (s *ConversationService) Create(ctx context.Context, userID uuid.UUID, title string) (*domain.Conversation, error) {
	c, err := s.store.CreateConversation(ctx, userID, title)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	s.conversations = append([]domain.Conversation{*c}, s.conversations...)
	s.active = c.ID
	s.messages = nil
	return c, nil
}

// Select loads the persisted messages of the given conversation and makes
// it active.
func (s *ConversationService) Select(ctx context.Context, userID, id uuid.UUID) error {
	messages, err := s.store.ListMessages(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	s.active = id
	s.messages = messages
	return nil
}

// StartNew clears the selection without creating anything: a conversation
// is only created lazily when the first message is sent.
func (s *ConversationService) StartNew() {
	s.active = uuid.Nil
	s.messages = nil
}

// AppendLocal inserts a message into the in-memory list only. Used for the
// optimistic user message and the in-flight assistant placeholder.
func (s *ConversationService) AppendLocal(m domain.Message) {
	s.messages = append(s.messages, m)
}

// MutateContent replaces the content of the identified message in place.
// Called on every streaming delta; repeated calls with growing content
// converge to the same final state.
func (s *ConversationService) MutateContent(id uuid.UUID, content string) {
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Content = content
			return
		}
	}
}

// Finalize applies the last local mutation to a message, then persists it
// and bumps the conversation's updated_at. These are two store calls, not
// a transaction: a failed bump is logged and tolerated.
func (s *ConversationService) Finalize(ctx context.Context, id uuid.UUID, content string, emotion domain.Emotion) error {
	var msg *domain.Message
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Content = content
			s.messages[i].Emotion = emotion
			msg = &s.messages[i]
			break
		}
	}
	if msg == nil {
		return domain.ErrMessageNotFound
	}

	if err := s.store.InsertMessage(ctx, msg); err != nil {
		return fmt.Errorf("persist message: %w", err)
	}
	if err := s.store.TouchConversation(ctx, msg.ConversationID); err != nil {
		slog.Error("bump conversation updated_at", "error", err, "conversation_id", msg.ConversationID)
	}
	s.touchLocal(msg.ConversationID)
	return nil
}

// SetTitle persists a new conversation title and mirrors it in memory.
func (s *ConversationService) SetTitle(ctx context.Context, id uuid.UUID, title string) error {
	if err := s.store.UpdateConversationTitle(ctx, id, title); err != nil {
		return err
	}
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			s.conversations[i].Title = title
			s.conversations[i].UpdatedAt = time.Now()
			break
		}
	}
	return nil
}

// Delete removes a conversation durably and locally; deleting the active
// one resets the selection.
func (s *ConversationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteConversation(ctx, id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
			break
		}
	}
	if s.active == id {
		s.active = uuid.Nil
		s.messages = nil
	}
	return nil
}

func (s *ConversationService) touchLocal(id uuid.UUID) {
	for i := range s.conversations {
		if s.conversations[i].ID == id {
			s.conversations[i].UpdatedAt = time.Now()
			return
		}
	}
}
