package suggestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/habitflow-app/habitflow-api/internal/config"
	"google.golang.org/genai"
)

// Provider sends a prompt pair to the model and returns the raw text
// response. Parsing is the service's concern since different operations
// expect different shapes.
type Provider interface {
	SendPrompt(ctx context.Context, system, user string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(
		ctx,
		"gemini-2.0-flash",
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	raw := result.Text()
	if raw == "" {
		return "", errors.New("empty model response")
	}
	return raw, nil
}

// stripFences removes the markdown code fences Gemini often wraps JSON in.
func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	return strings.Trim(clean, "`")
}
