package domain

import "strings"

// Emotion is the closed set of moods the assistant may tag a reply with.
type Emotion string

const (
	EmotionNone     Emotion = ""
	EmotionHappy    Emotion = "happy"
	EmotionCalm     Emotion = "calm"
	EmotionSad      Emotion = "sad"
	EmotionStressed Emotion = "stressed"
	EmotionAnxious  Emotion = "anxious"
	EmotionNeutral  Emotion = "neutral"
)

// Emotions lists every valid emotion value.
var Emotions = []Emotion{
	EmotionHappy,
	EmotionCalm,
	EmotionSad,
	EmotionStressed,
	EmotionAnxious,
	EmotionNeutral,
}

// ParseEmotion maps a raw string to an Emotion, case-insensitively.
func ParseEmotion(s string) (Emotion, bool) {
	e := Emotion(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Emotions {
		if e == known {
			return e, true
		}
	}
	return EmotionNone, false
}

// Positive reports whether the emotion counts toward positive-day stats.
func (e Emotion) Positive() bool {
	return e == EmotionHappy || e == EmotionCalm
}
