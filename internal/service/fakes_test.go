package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

// fakeStore is an in-memory stand-in for the durable store.
type fakeStore struct {
	mu sync.Mutex

	conversations  []domain.Conversation
	messages       []domain.Message
	moods          []domain.MoodEntry
	savedQuotes    []domain.SavedQuote
	journalEntries []domain.JournalEntry

	failCreateConversation bool
	failInsertMessage      bool

	touches int
}

func (f *fakeStore) CreateConversation(_ context.Context, userID uuid.UUID, title string) (*domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateConversation {
		return nil, errors.New("store down")
	}
	c := domain.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.conversations = append([]domain.Conversation{c}, f.conversations...)
	return &c, nil
}

func (f *fakeStore) ListConversations(_ context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Conversation
	for _, c := range f.conversations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateConversationTitle(_ context.Context, id uuid.UUID, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.conversations {
		if f.conversations[i].ID == id {
			f.conversations[i].Title = title
			return nil
		}
	}
	return domain.ErrConversationNotFound
}

func (f *fakeStore) TouchConversation(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touches++
	for i := range f.conversations {
		if f.conversations[i].ID == id {
			f.conversations[i].UpdatedAt = time.Now()
		}
	}
	return nil
}

func (f *fakeStore) DeleteConversation(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.conversations {
		if f.conversations[i].ID == id {
			f.conversations = append(f.conversations[:i], f.conversations[i+1:]...)
			break
		}
	}
	var kept []domain.Message
	for _, m := range f.messages {
		if m.ConversationID != id {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

func (f *fakeStore) InsertMessage(_ context.Context, m *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsertMessage {
		return errors.New("store down")
	}
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeStore) ListMessages(_ context.Context, userID, conversationID uuid.UUID) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Message
	for _, m := range f.messages {
		if m.UserID == userID && m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertMoodEntry(_ context.Context, userID uuid.UUID, mood domain.Emotion, intensity int, note string) (*domain.MoodEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := domain.MoodEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Mood:      mood,
		Intensity: intensity,
		Note:      note,
		CreatedAt: time.Now(),
	}
	f.moods = append(f.moods, e)
	return &e, nil
}

func (f *fakeStore) ListMoodEntriesSince(_ context.Context, userID uuid.UUID, since time.Time) ([]domain.MoodEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.MoodEntry
	for _, e := range f.moods {
		if e.UserID == userID && !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertSavedQuote(_ context.Context, userID uuid.UUID, quote, author string) (*domain.SavedQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := domain.SavedQuote{
		ID:        uuid.New(),
		UserID:    userID,
		Quote:     quote,
		Author:    author,
		CreatedAt: time.Now(),
	}
	f.savedQuotes = append(f.savedQuotes, q)
	return &q, nil
}

func (f *fakeStore) ListSavedQuotes(_ context.Context, userID uuid.UUID) ([]domain.SavedQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.SavedQuote
	for _, q := range f.savedQuotes {
		if q.UserID == userID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteSavedQuote(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.savedQuotes {
		if f.savedQuotes[i].ID == id {
			f.savedQuotes = append(f.savedQuotes[:i], f.savedQuotes[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) InsertJournalEntry(_ context.Context, userID uuid.UUID, content string) (*domain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := domain.JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	f.journalEntries = append([]domain.JournalEntry{e}, f.journalEntries...)
	return &e, nil
}

func (f *fakeStore) ListJournalEntries(_ context.Context, userID uuid.UUID, limit int) ([]domain.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.JournalEntry
	for _, e := range f.journalEntries {
		if e.UserID == userID {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteJournalEntry(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.journalEntries {
		if f.journalEntries[i].ID == id {
			f.journalEntries = append(f.journalEntries[:i], f.journalEntries[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) userMessages() []domain.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Message
	for _, m := range f.messages {
		if m.Role == domain.RoleUser {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeStore) assistantMessages() []domain.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Message
	for _, m := range f.messages {
		if m.Role == domain.RoleAssistant {
			out = append(out, m)
		}
	}
	return out
}

// fakeStreamer serves canned stream bodies per turn.
type fakeStreamer struct {
	bodies []io.ReadCloser
	calls  int
	sent   [][]ChatMessage
}

func (f *fakeStreamer) OpenStream(_ context.Context, messages []ChatMessage, _ *float64) (io.ReadCloser, error) {
	f.sent = append(f.sent, messages)
	if f.calls >= len(f.bodies) {
		return nil, errors.New("no stream configured")
	}
	body := f.bodies[f.calls]
	f.calls++
	return body, nil
}

// fakeNotifier records toasts and the crisis banner.
type fakeNotifier struct {
	mu     sync.Mutex
	toasts []string
	crisis bool
}

func (f *fakeNotifier) Toast(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toasts = append(f.toasts, message)
}

func (f *fakeNotifier) ShowCrisisBanner() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.crisis = true
}

func (f *fakeNotifier) toastCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.toasts)
}

func (f *fakeNotifier) crisisShown() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.crisis
}

// fakeSpeaker records spoken text.
type fakeSpeaker struct {
	enabled bool
	spoken  []string
	ids     []uuid.UUID
}

func (f *fakeSpeaker) Enabled() bool { return f.enabled }

func (f *fakeSpeaker) Speak(text string, messageID uuid.UUID) error {
	f.spoken = append(f.spoken, text)
	f.ids = append(f.ids, messageID)
	return nil
}

// sseBody renders fragments as a completion event stream ending with the
// sentinel.
func sseBody(fragments ...string) io.ReadCloser {
	var sb []byte
	for _, frag := range fragments {
		sb = append(sb, []byte(`data: {"choices":[{"delta":{"content":`)...)
		sb = append(sb, []byte(jsonString(frag))...)
		sb = append(sb, []byte("}}]}\n")...)
	}
	sb = append(sb, []byte("data: [DONE]\n")...)
	return io.NopCloser(newSliceReader(sb))
}

func jsonString(s string) string {
	out := []byte{'"'}
	for _, r := range s {
		switch r {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, []byte(string(r))...)
		}
	}
	return string(append(out, '"'))
}

type sliceReader struct {
	data []byte
	pos  int
}

func newSliceReader(data []byte) *sliceReader { return &sliceReader{data: data} }

func (r *sliceReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// brokenBody yields some frames then fails with a transport error.
type brokenBody struct {
	reader io.Reader
	err    error
}

func (b *brokenBody) Read(p []byte) (int, error) {
	n, err := b.reader.Read(p)
	if err == io.EOF {
		return n, b.err
	}
	return n, err
}

func (b *brokenBody) Close() error { return nil }
