package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/smoralesv/itinera/internal/domain"
)

// GeminiClient talks to the Gemini API. It serves both ports: stateful
// chat sessions for slot extraction and one-shot generation for
// itineraries and route summaries.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// NewSession implements domain.Extractor. Each session wraps its own
// genai chat, which carries the model-side conversation context.
func (g *GeminiClient) NewSession(ctx context.Context) (domain.ExtractorSession, error) {
	chat, err := g.client.Chats.Create(ctx, g.modelName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating gemini chat: %w", err)
	}
	return &geminiSession{chat: chat}, nil
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) Send(ctx context.Context, prompt string) (string, error) {
	res, err := s.chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("gemini send message: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}

// Close implements domain.ExtractorSession. Gemini chats hold no
// connection of their own; dropping the handle is enough.
func (s *geminiSession) Close() error {
	s.chat = nil
	return nil
}

// Itinerary implements domain.ItineraryGenerator.
func (g *GeminiClient) Itinerary(
	ctx context.Context,
	origin, destination string,
	start, end time.Time,
	interests []string,
) (string, error) {
	return g.generate(ctx, ItineraryPrompt(origin, destination, start, end, interests))
}

func (g *GeminiClient) RouteSummary(ctx context.Context, origin, destination string) (string, error) {
	return g.generate(ctx, RouteSummaryPrompt(origin, destination))
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: 8192,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}
