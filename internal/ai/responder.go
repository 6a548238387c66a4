// Package ai wraps the generative text endpoint. One prompt in, one
// completion out; empty completions are replaced by a fixed fallback so the
// handlers always have something to send.
package ai

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// Fallback is returned in place of an empty completion.
const Fallback = "⚠️ Sorry, I couldn't understand that."

type Responder struct {
	client *openai.Client
	model  string
}

func NewResponder(apiKey, model string) *Responder {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Responder{
		client: &client,
		model:  model,
	}
}

// Generate sends prompt to the completion endpoint and returns its text.
// The call is synchronous with no retry, backoff, or client-side timeout;
// endpoint errors are returned to the caller to surface at the handler
// boundary.
func (r *Responder) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: r.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return Fallback, nil
	}
	return text, nil
}
