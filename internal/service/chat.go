package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/annotate"
	"github.com/kaviyashree6/chatbot/internal/config"
	"github.com/kaviyashree6/chatbot/internal/domain"
	"github.com/kaviyashree6/chatbot/internal/stream"
)

// TurnState tracks where the orchestrator is within a turn.
type TurnState int32

const (
	TurnIdle TurnState = iota
	TurnAwaitingConversation
	TurnStreaming
	TurnFinalizing
	TurnError
)

func (s TurnState) String() string {
	switch s {
	case TurnIdle:
		return "idle"
	case TurnAwaitingConversation:
		return "awaiting-conversation"
	case TurnStreaming:
		return "streaming"
	case TurnFinalizing:
		return "finalizing"
	case TurnError:
		return "error"
	default:
		return "unknown"
	}
}

// Streamer opens the completion stream for one turn.
type Streamer interface {
	OpenStream(ctx context.Context, messages []ChatMessage, temperature *float64) (io.ReadCloser, error)
}

// Notifier surfaces user-visible signals raised during a turn.
type Notifier interface {
	Toast(message string)
	// ShowCrisisBanner raises the sticky crisis banner. It stays up until
	// dismissed by navigation, not by time.
	ShowCrisisBanner()
}

// MoodLogger records a mood entry detected from chat.
type MoodLogger interface {
	Log(ctx context.Context, userID uuid.UUID, mood domain.Emotion, intensity int, note string) (*domain.MoodEntry, error)
}

// Speaker plays finalized replies aloud when live speech is enabled.
type Speaker interface {
	Enabled() bool
	Speak(text string, messageID uuid.UUID) error
}

// ChatService orchestrates one user turn end to end: persist the user
// message, stream the assistant reply into the conversation state machine,
// finalize it, and fire the dependent effects.
type ChatService struct {
	conv       *ConversationService
	completion Streamer
	moods      MoodLogger
	speaker    Speaker
	ui         Notifier

	systemPrompt string
	temperature  *float64

	inFlight atomic.Bool
	state    atomic.Int32
}

func NewChatService(conv *ConversationService, completion Streamer, moods MoodLogger, speaker Speaker, ui Notifier, systemPrompt string, temperature *float64) *ChatService {
	if systemPrompt == "" {
		systemPrompt = config.DefaultSystemPrompt
	}
	return &ChatService{
		conv:         conv,
		completion:   completion,
		moods:        moods,
		speaker:      speaker,
		ui:           ui,
		systemPrompt: systemPrompt,
		temperature:  temperature,
	}
}

// State returns the current turn state.
func (s *ChatService) State() TurnState {
	return TurnState(s.state.Load())
}

func (s *ChatService) setState(st TurnState) {
	s.state.Store(int32(st))
}

// SendMessage runs a single user turn. Turns are single-flight: a second
// call while one is streaming returns domain.ErrActiveTurn.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, input string) error {
	input = strings.TrimSpace(input)

	// 1. Guard: no empty input, no reentrancy.
	if input == "" {
		return domain.ErrEmptyMessage
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.ErrActiveTurn
	}
	defer s.inFlight.Store(false)
	defer s.setState(TurnIdle)

	// 2. Distress detection on the raw input, before any network call.
	if annotate.DetectDistress(input) {
		s.ui.ShowCrisisBanner()
	}

	// 3. Ensure an active conversation exists, creating one lazily.
	s.setState(TurnAwaitingConversation)
	if s.conv.Active() == uuid.Nil {
		if _, err := s.conv.Create(ctx, userID, config.DefaultConversationTitle); err != nil {
			s.setState(TurnError)
			s.ui.Toast("Could not start conversation")
			return err
		}
	}
	conversationID := s.conv.Active()

	history := s.conv.Messages()
	firstExchange := len(history) == 0

	// 4. Append the user message locally, then persist it. The turn does
	// not block on persistence succeeding; the rendered state is
	// authoritative for this session.
	userMsg := domain.Message{
		ID:             uuid.New(),
		UserID:         userID,
		ConversationID: conversationID,
		Role:           domain.RoleUser,
		Content:        input,
		CreatedAt:      time.Now(),
	}
	s.conv.AppendLocal(userMsg)
	if err := s.conv.Finalize(ctx, userMsg.ID, input, domain.EmotionNone); err != nil {
		slog.Error("persist user message", "error", err, "conversation_id", conversationID)
	}

	// 5. Append the in-flight assistant placeholder.
	assistantID := uuid.New()
	s.conv.AppendLocal(domain.Message{
		ID:             assistantID,
		UserID:         userID,
		ConversationID: conversationID,
		Role:           domain.RoleAssistant,
		CreatedAt:      time.Now(),
	})
	s.setState(TurnStreaming)

	// 6. Open the stream and drive decoder and aggregator; every fragment
	// live-updates the placeholder through the state machine.
	chatMessages := make([]ChatMessage, 0, len(history)+2)
	chatMessages = append(chatMessages, ChatMessage{Role: "system", Content: s.systemPrompt})
	for _, m := range history {
		chatMessages = append(chatMessages, ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	chatMessages = append(chatMessages, ChatMessage{Role: "user", Content: input})

	body, err := s.completion.OpenStream(ctx, chatMessages, s.temperature)
	if err != nil {
		s.setState(TurnError)
		slog.Error("open completion stream", "error", err)
		s.ui.Toast("Unable to send message. Please try again.")
		return err
	}
	defer body.Close()

	dec := stream.NewDecoder(body)
	agg := stream.NewAggregator(func(accumulated string) {
		s.conv.MutateContent(assistantID, annotate.Clean(accumulated))
	})

	for {
		frame, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Whatever text already streamed stays rendered; nothing is
			// rolled back.
			s.setState(TurnError)
			slog.Error("read completion stream", "error", err)
			s.ui.Toast("Unable to send message. Please try again.")
			return err
		}
		agg.Add(frame)
	}

	// 7. Finalize: authoritative annotation pass, durable insert, and the
	// first-exchange title. Failures past this point are logged, never
	// surfaced, and never roll back earlier steps.
	s.setState(TurnFinalizing)
	raw := agg.Content()
	emotion, _ := annotate.ExtractEmotion(raw)
	clean := annotate.Clean(raw)

	if err := s.conv.Finalize(ctx, assistantID, clean, emotion); err != nil {
		slog.Error("persist assistant message", "error", err, "conversation_id", conversationID)
	}

	if firstExchange {
		if err := s.conv.SetTitle(ctx, conversationID, deriveTitle(input)); err != nil {
			slog.Error("set conversation title", "error", err, "conversation_id", conversationID)
		}
	}

	// 8. Log a mood entry when the reply carried an emotion tag.
	if emotion != domain.EmotionNone && s.moods != nil {
		if _, err := s.moods.Log(ctx, userID, emotion, config.DefaultMoodIntensity, config.MoodChatNote); err != nil {
			slog.Error("log mood entry", "error", err, "mood", emotion)
		}
	}

	// 9. Speak the finalized clean text when live speech is on.
	if s.speaker != nil && s.speaker.Enabled() && clean != "" {
		if err := s.speaker.Speak(clean, assistantID); err != nil {
			slog.Error("speak reply", "error", err)
		}
	}

	// 10. Back to idle via the deferred reset.
	return nil
}

// deriveTitle names a conversation after the first user message, truncated
// to 30 characters with an ellipsis.
func deriveTitle(input string) string {
	r := []rune(input)
	if len(r) <= config.TitleMaxLen {
		return input
	}
	return string(r[:config.TitleMaxLen]) + "..."
}
