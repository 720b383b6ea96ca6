package oracle

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/goccy/go-json"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

const systemPrompt = `You rerank a social media feed for one user.

You receive a JSON object with the user's behavioral context, an optional intent,
a session mode, and a list of candidate posts. Order the candidates from most to least
relevant for this user right now. Favor the user's top tags and the intent when given.
In "quick" mode prefer short content, in "deep" mode prefer longform content,
in "explore" mode prefer variety of creators and formats.

Output ONLY a JSON object of the form {"order": ["<id>", ...], "notes": "<one sentence>"}.
Use only ids from the candidates. No markdown, no explanations.`

// claudeBackend asks a Claude model for a reorder.
type claudeBackend struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func newClaudeBackend(apiKey, model string, maxTokens int64, baseURL string) *claudeBackend {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &claudeBackend{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (b *claudeBackend) Name() string { return "claude" }

func (b *claudeBackend) Complete(ctx context.Context, req domain.OracleRequest) ([]byte, error) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	msg, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(b.model),
		MaxTokens: b.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(string(payload))),
		},
	})
	if err != nil {
		return nil, domain.NewOracleError(ReasonTransport, err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, domain.NewOracleError(ReasonNoJSON, fmt.Errorf("empty response"))
	}

	return []byte(text.String()), nil
}
