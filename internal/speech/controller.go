package speech

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/kaviyashree6/chatbot/internal/domain"
)

// Controller owns the single synthesis output channel. The channel is
// exclusive: starting a new utterance cancels the one currently playing.
// All controller state is ephemeral and session-scoped.
type Controller struct {
	synth Synthesizer
	rec   Recognizer

	mu         sync.Mutex
	enabled    bool
	lang       string
	generation int
	speakingID uuid.UUID
	speaking   bool
	listening  bool
}

func NewController(synth Synthesizer, rec Recognizer, lang string) *Controller {
	return &Controller{synth: synth, rec: rec, lang: lang}
}

func (c *Controller) SetEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = on
}

func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Controller) SetLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lang = lang
}

func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

// Speaking reports whether an utterance is playing and, if so, the id of
// the message being spoken.
func (c *Controller) Speaking() (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speakingID, c.speaking
}

// Speak starts spoken playback of text attributed to the given message,
// cancelling any utterance already playing. Playback runs asynchronously.
func (c *Controller) Speak(text string, messageID uuid.UUID) error {
	if c.synth == nil {
		return domain.ErrSpeechUnsupported
	}

	c.mu.Lock()
	if c.speaking {
		c.synth.Cancel()
	}
	c.generation++
	gen := c.generation
	c.speaking = true
	c.speakingID = messageID
	lang := c.lang
	c.mu.Unlock()

	go func() {
		if err := c.synth.Speak(context.Background(), lang, text); err != nil {
			slog.Error("speech synthesis failed", "error", err, "message_id", messageID)
		}
		c.mu.Lock()
		if c.generation == gen {
			c.speaking = false
			c.speakingID = uuid.Nil
		}
		c.mu.Unlock()
	}()
	return nil
}

// Listen starts voice capture and blocks until a final transcript, an
// abort, or context cancellation. Interim transcripts go to onInterim
// when non-nil.
func (c *Controller) Listen(ctx context.Context, onInterim func(string)) (string, error) {
	if c.rec == nil {
		return "", domain.ErrSpeechUnsupported
	}

	c.mu.Lock()
	if c.listening {
		c.mu.Unlock()
		return "", domain.ErrAlreadyListening
	}
	c.listening = true
	lang := c.lang
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.listening = false
		c.mu.Unlock()
	}()

	if err := c.rec.Start(lang); err != nil {
		return "", err
	}

	for {
		select {
		case <-ctx.Done():
			c.rec.Abort()
			return "", ctx.Err()
		case tr, ok := <-c.rec.Transcripts():
			if !ok {
				return "", nil
			}
			if tr.Final {
				c.rec.Stop()
				return tr.Text, nil
			}
			if onInterim != nil {
				onInterim(tr.Text)
			}
		}
	}
}

// Listening reports whether voice capture is active.
func (c *Controller) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Stop cancels the current utterance, if any. Safe to call on unmount or
// navigation.
func (c *Controller) Stop() {
	if c.synth == nil {
		return
	}
	c.mu.Lock()
	c.generation++
	c.speaking = false
	c.speakingID = uuid.Nil
	c.mu.Unlock()
	c.synth.Cancel()
}
