// Package speech models the spoken-language collaborators as explicit
// capability interfaces injected into the orchestrator, replacing ambient
// callback-driven engines.
package speech

import "context"

// Transcript is one recognition result. Interim transcripts may repeat;
// the final one replaces them.
type Transcript struct {
	Text  string
	Final bool
}

// Recognizer converts spoken input to text for a selected locale.
type Recognizer interface {
	// Start begins listening in the given locale.
	Start(lang string) error
	// Stop ends listening and lets a final transcript flush.
	Stop()
	// Abort ends listening and discards pending transcripts.
	Abort()
	// Transcripts delivers interim and final results in order.
	Transcripts() <-chan Transcript
}

// Synthesizer speaks text aloud. Speak blocks until the utterance finishes
// or Cancel interrupts it.
type Synthesizer interface {
	Speak(ctx context.Context, lang, text string) error
	Cancel()
}
