package config

import "time"

const (
	// Conversation titles derive from the first user message.
	TitleMaxLen = 30

	// Mood entries logged from chat use a fixed middle intensity.
	DefaultMoodIntensity = 5
	MoodChatNote         = "Detected from chat"

	// Mood statistics window
	MoodWindowDays = 7

	// Journal listing page size
	JournalPageSize = 20

	// Completion endpoint
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Timeout for non-streaming HTTP calls (quote fetch). The chat stream
	// itself carries no deadline: a stalled stream runs until the
	// connection drops.
	FetchTimeout = 30 * time.Second

	// Fetched daily quote cache duration
	QuoteCacheDuration = 12 * time.Hour

	// Default conversation title before the first exchange names it.
	DefaultConversationTitle = "New Chat"
)

// DefaultSystemPrompt steers the assistant and asks for the trailing
// emotion marker the annotator extracts.
const DefaultSystemPrompt = "You are MindfulMe, a warm and supportive wellness companion. " +
	"Listen with empathy, keep replies short and kind, and never give medical advice. " +
	"End every reply with an emotion tag describing the user's likely mood, " +
	"formatted exactly as [EMOTION: happy|calm|sad|stressed|anxious|neutral]."
