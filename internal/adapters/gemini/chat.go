// Package gemini adapts the Google GenAI SDK to the chat fallback port.
package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/ports/secondary"
)

// DefaultModel is used when neither the config nor the request names one.
const DefaultModel = "gemini-2.5-flash"

// ThinkingBudget is the token budget granted when thinking is enabled.
const ThinkingBudget = 2048

// SystemInstruction frames the model as the marina console assistant.
const SystemInstruction = "You are Ada, the operations assistant of West Istanbul Marina. " +
	"Answer concisely and in a professional maritime register. " +
	"You cannot change marina records; tell the operator which console command to use instead."

// ChatClient implements secondary.ChatFallback over the Gemini API.
type ChatClient struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewChatClient creates a client for the Gemini API.
func NewChatClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*ChatClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &ChatClient{client: client, model: model, logger: logging.OrNop(logger).Named("gemini")}, nil
}

// Stream generates a reply to the last message of the history and hands
// each streamed piece to onChunk.
func (c *ChatClient) Stream(ctx context.Context, req secondary.ChatRequest, onChunk func(secondary.ChatChunk)) error {
	model := req.Model
	if model == "" {
		model = c.model
	}

	chunks := 0
	for resp, err := range c.client.Models.GenerateContentStream(ctx, model, Contents(req.History), Config(req)) {
		if err != nil {
			return fmt.Errorf("gemini stream failed after %d chunks: %w", chunks, err)
		}
		chunks++
		onChunk(secondary.ChatChunk{Text: resp.Text(), Citations: Citations(resp)})
	}
	c.logger.Debug("chat reply streamed", zap.String("model", model), zap.Int("chunks", chunks))
	return nil
}

// Contents converts chat history to GenAI contents. Empty turns are dropped.
func Contents(history []secondary.ChatMessage) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		if m.Text == "" {
			continue
		}
		var role genai.Role = genai.RoleUser
		if m.Role == "model" {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Text, role))
	}
	return out
}

// Config builds the generation config for a request.
func Config(req secondary.ChatRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	}
	if req.UseSearch {
		cfg.Tools = append(cfg.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	if req.UseThinking {
		budget := int32(ThinkingBudget)
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}
	return cfg
}

// Citations extracts web grounding sources from a response.
func Citations(resp *genai.GenerateContentResponse) []secondary.Citation {
	if resp == nil {
		return nil
	}
	var out []secondary.Citation
	for _, cand := range resp.Candidates {
		if cand == nil || cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			out = append(out, secondary.Citation{URI: chunk.Web.URI, Title: chunk.Web.Title})
		}
	}
	return out
}
