package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"ai-trade-pro/internal/domain"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1"
	refererHeader  = "https://ai-trade-pro.vercel.app"
	titleHeader    = "AI Trade Pro"

	completionTemperature = 0.2
	completionMaxTokens   = 1000
)

// OpenRouter proxies chat completions to the OpenRouter API, which speaks the
// OpenAI wire protocol. Clients are built per call because the API key arrives
// with each request rather than from service configuration.
type OpenRouter struct {
	baseURL string
	rest    *resty.Client
}

func NewOpenRouter(baseURL string) *OpenRouter {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenRouter{
		baseURL: baseURL,
		rest: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second),
	}
}

func (o *OpenRouter) newClient(apiKey string) openai.Client {
	return openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(o.baseURL),
		option.WithHeader("HTTP-Referer", refererHeader),
		option.WithHeader("X-Title", titleHeader),
		option.WithMaxRetries(0),
	)
}

// Complete sends the assembled conversation to the given model and returns
// the raw completion text. Provider failures surface as *domain.UpstreamError
// carrying the provider's own message where one was given.
func (o *OpenRouter) Complete(ctx context.Context, apiKey, model, system string, messages []domain.ConversationMessage) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Temperature: openai.Float(completionTemperature),
		MaxTokens:   openai.Int(completionMaxTokens),
		Messages:    buildMessages(system, messages),
	}

	client := o.newClient(apiKey)
	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return "", &domain.UpstreamError{Message: apiErr.Message}
		}
		return "", &domain.UpstreamError{Message: err.Error()}
	}
	if len(completion.Choices) == 0 {
		// OpenRouter reports some failures as a 200 whose body carries an
		// error envelope instead of choices.
		if msg := embeddedErrorMessage(completion.RawJSON()); msg != "" {
			return "", &domain.UpstreamError{Message: msg}
		}
		return "", &domain.UpstreamError{Message: "provider returned no choices"}
	}
	return completion.Choices[0].Message.Content, nil
}

func embeddedErrorMessage(raw string) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		return ""
	}
	return strings.TrimSpace(envelope.Error.Message)
}

func buildMessages(system string, messages []domain.ConversationMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		out = append(out, openai.SystemMessage(system))
	}
	for _, m := range messages {
		switch m.Role {
		case domain.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			if m.Image != "" {
				parts := []openai.ChatCompletionContentPartUnionParam{
					openai.TextContentPart(m.Content),
					openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: m.Image}),
				}
				out = append(out, openai.UserMessage(parts))
				continue
			}
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

// ModelInfo is one entry from the provider's model catalog.
type ModelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type modelCatalog struct {
	Data []ModelInfo `json:"data"`
}

// ListModels fetches the provider's public model catalog. No API key is
// required for this endpoint.
func (o *OpenRouter) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var catalog modelCatalog
	resp, err := o.rest.R().
		SetContext(ctx).
		SetResult(&catalog).
		Get("/models")
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	if resp.IsError() {
		return nil, &domain.UpstreamError{Message: fmt.Sprintf("model catalog returned status %d", resp.StatusCode())}
	}
	return catalog.Data, nil
}
