// Package annotate extracts structured side-signals from chat text: the
// embedded emotion marker in assistant replies and distress language in
// raw user input.
package annotate

import (
	"regexp"
	"strings"

	"github.com/kaviyashree6/chatbot/internal/domain"
)

var emotionMarker = regexp.MustCompile(`(?i)\[EMOTION:\s*(happy|calm|sad|stressed|anxious|neutral)\]`)

// distressPhrases trip the crisis signal on a simple substring match of the
// user's own input. Matching is local; no network round-trip is involved.
var distressPhrases = []string{
	"suicide",
	"kill myself",
	"end it all",
	"want to die",
	"worthless",
	"hopeless",
	"can't go on",
	"self harm",
	"hurt myself",
}

// ExtractEmotion returns the first embedded emotion marker value, lowered.
func ExtractEmotion(text string) (domain.Emotion, bool) {
	m := emotionMarker.FindStringSubmatch(text)
	if m == nil {
		return domain.EmotionNone, false
	}
	return domain.ParseEmotion(m[1])
}

// Clean removes every emotion marker occurrence and trims surrounding
// whitespace. This is the only text ever rendered or persisted as message
// content. Clean is idempotent.
func Clean(text string) string {
	return strings.TrimSpace(emotionMarker.ReplaceAllString(text, ""))
}

// DetectDistress scans raw user input for crisis language,
// case-insensitively. A single phrase match is sufficient.
func DetectDistress(input string) bool {
	lower := strings.ToLower(input)
	for _, phrase := range distressPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
