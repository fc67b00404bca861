package llm

import (
	"strings"
	"time"
)

// Default generation settings. Low temperature keeps structured output
// stable across retries; the timeout bounds a single remote call so a hung
// gateway cannot block a reviewer branch indefinitely.
const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultTemperature     = float32(0.1)
	DefaultMaxOutputTokens = int32(8192)
	DefaultRequestTimeout  = 120 * time.Second
)

// Config holds the generation gateway settings.
type Config struct {
	// APIKey authenticates against the Gemini API. Required.
	APIKey string

	// Model selects the generation model. Empty selects DefaultModel.
	Model string

	// Temperature controls sampling randomness. Zero selects the default.
	Temperature float32

	// MaxOutputTokens caps the response size. Zero selects the default.
	MaxOutputTokens int32

	// RequestTimeout bounds each generation call. Zero selects the default.
	RequestTimeout time.Duration
}

// withDefaults returns a copy with unset fields filled in.
func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxOutputTokens == 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return c
}
