// Package triage runs AI classification over newly opened tickets and
// drives them to resolved or needs_manual_review.
package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"loftwork/internal/domain/ticket"
	"loftwork/internal/shared/config"
	"loftwork/internal/shared/logger"
)

// Outcome is the classifier's verdict on a single ticket.
type Outcome struct {
	Resolve      bool   `json:"resolve"`
	Resolution   string `json:"resolution"`
	ActionTaken  string `json:"action_taken"`
	ReviewReason string `json:"review_reason"`
}

// Classifier decides whether a ticket can be auto-resolved.
type Classifier interface {
	Classify(ctx context.Context, snapshot ticket.Snapshot) (*Outcome, error)
}

const systemPrompt = `You are a maintenance ticket triage assistant for a property management company.
Given a ticket, decide whether it can be resolved automatically (scheduling a standard vendor visit,
sending tenant instructions for trivial issues) or needs a human property manager.
Respond with a single JSON object: {"resolve": bool, "resolution": string, "action_taken": string, "review_reason": string}.
Set "resolve" to true only for routine, low-risk issues. Anything involving safety, legal exposure,
structural damage, or ambiguous scope must go to manual review with a short "review_reason".`

// OpenAIClassifier classifies tickets with a chat completion call.
type OpenAIClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  logger.Interface
}

func NewOpenAIClassifier(cfg config.TriageConfig, log logger.Interface) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("triage API key is not configured")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClassifier{
		client:  openai.NewClient(cfg.APIKey),
		model:   model,
		timeout: timeout,
		logger:  log,
	}, nil
}

func (c *OpenAIClassifier) Classify(ctx context.Context, snapshot ticket.Snapshot) (*Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Title: %s\nPriority: %s\nDescription:\n%s",
		snapshot.Title, snapshot.Priority, snapshot.Description)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("classification call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("classification returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	var outcome Outcome
	if err := json.Unmarshal([]byte(content), &outcome); err != nil {
		return nil, fmt.Errorf("failed to parse classification response: %w", err)
	}

	c.logger.Debugw("ticket classified",
		"ticket_id", snapshot.ID,
		"resolve", outcome.Resolve,
	)
	return &outcome, nil
}
