package llm

import "os"

// defaultModel is used when GEMINI_MODEL is not set. Matching is a single
// structured-output call; flash is plenty.
const defaultModel = "gemini-2.5-flash"

// Config holds model configuration for the client.
type Config struct {
	Model       string
	Temperature float32
}

// DefaultConfig returns the default model configuration, honoring the
// GEMINI_MODEL environment variable.
func DefaultConfig() *Config {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Config{
		Model:       model,
		Temperature: 0.1, // low temperature for consistent structured output
	}
}

// WithModel returns a copy of the config with a different model.
func (c *Config) WithModel(model string) *Config {
	copied := *c
	copied.Model = model
	return &copied
}
