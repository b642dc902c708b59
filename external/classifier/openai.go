package classifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/foxseedlab/rusuban/internal/classifier"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	urgencyPromptFormat = "Decide if this message is urgent. Reply YES or NO only.\nMessage: %q"
	urgencyMaxTokens    = 3
	requestTimeout      = 10 * time.Second
)

// OpenAIClassifier asks an OpenAI-compatible endpoint for a binary
// urgency verdict. The wrapping Fallback treats every error here as a
// signal to answer with the keyword scan instead.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

func NewOpenAIClassifier(apiKey, baseURL, model string) classifier.Remote {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIClassifier{client: &client, model: model}
}

func (c *OpenAIClassifier) IsUrgent(ctx context.Context, text string) (bool, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(fmt.Sprintf(urgencyPromptFormat, text)),
		},
		MaxTokens: openai.Int(urgencyMaxTokens),
	})
	if err != nil {
		return false, fmt.Errorf("urgency completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return false, fmt.Errorf("urgency completion returned no choices")
	}
	answer := strings.ToUpper(strings.TrimSpace(resp.Choices[0].Message.Content))
	return strings.Contains(answer, "YES"), nil
}
