package openai

import (
	"github.com/sashabaranov/go-openai"
)

// NewClient builds a client from explicit credentials. An empty baseURL keeps
// the public OpenAI endpoint.
func NewClient(apiKey string, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(config)
}
