package config

import (
	"os"
	"strings"
)

// envVarByProvider maps a provider tag to its API key environment variable.
var envVarByProvider = map[string]string{
	"deepseek":  "DEEPSEEK_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
	"tikhub":    "TIKHUB_API_KEY",
}

// Credential resolves the API key for a provider. The environment
// variable always wins over the config file entry.
func (c *Config) Credential(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))

	if envVar, ok := envVarByProvider[provider]; ok {
		if key := os.Getenv(envVar); key != "" {
			return key
		}
	}
	return c.APIKeys[provider]
}
