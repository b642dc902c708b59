package reply

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/foxseedlab/rusuban/internal/reply"
	"github.com/foxseedlab/rusuban/internal/state"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	replySystemPrompt = "You answer a phone call on behalf of an unavailable person. " +
		"Reply with exactly one short, polite spoken sentence telling the caller the person " +
		"cannot talk right now and that the message will be passed along. " +
		"Never say you are an assistant, a bot, automated, or an AI."
	replyUserPromptFormat = "The person is unavailable because: %s.\nThe caller said: %q"
	replyMaxTokens        = 60
	requestTimeout        = 10 * time.Second
)

// OpenAIGenerator produces a more natural spoken reply than the static
// template. The wrapping GeneratedComposer falls back to the template on
// any failure.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey, baseURL, model string) reply.Remote {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIGenerator{client: &client, model: model}
}

func (g *OpenAIGenerator) GenerateReply(ctx context.Context, record state.ModeRecord, transcript string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(replySystemPrompt),
			openai.UserMessage(fmt.Sprintf(replyUserPromptFormat, unavailabilityContext(record), transcript)),
		},
		MaxTokens: openai.Int(replyMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("reply completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("reply completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func unavailabilityContext(record state.ModeRecord) string {
	if record.Mode == state.ModeCustom && strings.TrimSpace(record.Reason) != "" {
		return record.Reason
	}
	switch record.Mode {
	case state.ModeSleep:
		return "sleeping"
	case state.ModeMeeting:
		return "in a meeting"
	case state.ModeDriving:
		return "driving"
	default:
		return "busy"
	}
}
