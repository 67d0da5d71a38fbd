package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smoralesv/itinera/internal/domain"
)

// MockLLM is a deterministic stand-in for local development without a
// Gemini key. It never extracts anything and always asks the same
// question, but it exercises the whole pipeline.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) NewSession(ctx context.Context) (domain.ExtractorSession, error) {
	return &mockSession{}, nil
}

type mockSession struct{}

func (s *mockSession) Send(ctx context.Context, prompt string) (string, error) {
	out, _ := json.Marshal(domain.Extraction{
		FollowUp: "Where are you travelling from, where to, and on which dates?",
	})
	return string(out), nil
}

func (s *mockSession) Close() error { return nil }

func (m *MockLLM) Itinerary(
	ctx context.Context,
	origin, destination string,
	start, end time.Time,
	interests []string,
) (string, error) {
	return fmt.Sprintf("Mock itinerary: %s to %s, %s through %s.",
		origin, destination,
		start.Format("January 2, 2006"), end.Format("January 2, 2006")), nil
}

func (m *MockLLM) RouteSummary(ctx context.Context, origin, destination string) (string, error) {
	return fmt.Sprintf("Mock route summary from %s to %s.", origin, destination), nil
}
