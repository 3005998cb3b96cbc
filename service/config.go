package service

import (
	"errors"
	"os"
)

// ErrAPIKeyMissing is the configuration error raised at startup when no API
// credential is present. It blocks every extraction, news and chat feature
// before any of them can be attempted.
var ErrAPIKeyMissing = errors.New("GEMINI_API_KEY is not configured")

const (
	defaultModel    = "gemini-2.5-flash"
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
)

// Config holds the Gemini API settings, constructed once at process start
// and injected into every service that talks to the model.
type Config struct {
	APIKey   string
	Model    string
	Endpoint string
}

// NewConfigFromEnv builds the Gemini configuration from the environment,
// failing fast when the credential is absent.
func NewConfigFromEnv() (Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return Config{}, ErrAPIKeyMissing
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return Config{
		APIKey:   apiKey,
		Model:    model,
		Endpoint: defaultEndpoint,
	}, nil
}
