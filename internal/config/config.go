package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

type Config struct {
	// Core
	DatabaseURL   string `env:"DATABASE_URL,required"`
	OpenRouterKey string `env:"OPENROUTER_API_KEY,required"`

	// Identity of the local user owning all stored rows.
	UserID uuid.UUID `env:"USER_ID,required"`

	// Chat behavior
	Model        string  `env:"CHAT_MODEL" envDefault:"google/gemini-2.5-flash"`
	Temperature  float64 `env:"CHAT_TEMPERATURE" envDefault:"0.8"`
	SystemPrompt string  `env:"SYSTEM_PROMPT"`

	// Speech synthesis: external command receiving the utterance as its
	// final argument (e.g. "espeak-ng" or "say"). Empty disables TTS.
	TTSCommand string   `env:"TTS_COMMAND"`
	TTSArgs    []string `env:"TTS_ARGS" envSeparator:" "`

	// Spoken language for recognition/synthesis.
	Language string `env:"SPEECH_LANGUAGE" envDefault:"en-US"`

	// Quote fetching
	QuoteFeedURL string `env:"QUOTE_FEED_URL" envDefault:"https://www.passiton.com/inspirational-quotes"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
