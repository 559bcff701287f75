// Package llm builds chat-model clients against an OpenRouter-compatible API.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Role selects per-role model overrides from a shared Config.
type Role string

const (
	RoleClassifier Role = "classifier"
	RoleRenderer   Role = "renderer"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"google/gemini-2.5-flash"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	ClassifierModel       string  `envconfig:"CLASSIFIER_MODEL" split_words:"true"`
	RendererModel         string  `envconfig:"RENDERER_MODEL" split_words:"true"`
	ClassifierTemperature float32 `envconfig:"CLASSIFIER_TEMPERATURE" split_words:"true" default:"-1"`
	RendererTemperature   float32 `envconfig:"RENDERER_TEMPERATURE" split_words:"true" default:"-1"`
}

// Enabled reports whether an API key is configured. Without one the core runs
// on its deterministic fallbacks only.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// For resolves the effective model name and temperature for a role.
func (c Config) For(role Role) (string, float32) {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch role {
	case RoleClassifier:
		if v := strings.TrimSpace(c.ClassifierModel); v != "" {
			modelName = v
		}
		if c.ClassifierTemperature >= 0 {
			temp = c.ClassifierTemperature
		}
	case RoleRenderer:
		if v := strings.TrimSpace(c.RendererModel); v != "" {
			modelName = v
		}
		if c.RendererTemperature >= 0 {
			temp = c.RendererTemperature
		}
	}
	return modelName, temp
}

// NewChatModel creates an eino chat model for the given role.
func (c Config) NewChatModel(ctx context.Context, role Role) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("llm: api key is required for role=%s", role)
	}

	modelName, temp := c.For(role)
	maxTokens := c.MaxCompletionToken

	conf := &openaimodel.ChatModelConfig{
		BaseURL:     strings.TrimRight(c.BaseURL, "/"),
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       modelName,
		MaxTokens:   &maxTokens,
		Temperature: &temp,
		Timeout:     c.Timeout,
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("llm: create chat model for role=%s: %w", role, err)
	}
	return m, nil
}

// NewClient creates a raw OpenAI SDK client pointed at the configured base URL.
// Returns nil when no API key is configured.
func NewClient(cfg Config) *openaisdk.Client {
	if !cfg.Enabled() {
		return nil
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}

	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.SiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.SiteURL))
	}
	if cfg.SiteName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.SiteName))
	}

	client := openaisdk.NewClient(opts...)
	return &client
}
