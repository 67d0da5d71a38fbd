package extraction

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/smoralesv/itinera/internal/domain"
)

var (
	fenceOpen  = regexp.MustCompile("^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
)

// stripFences tolerates extractors that wrap their JSON in a markdown
// code block. Unfenced input passes through unchanged.
func stripFences(raw string) string {
	out := strings.TrimSpace(raw)
	out = fenceOpen.ReplaceAllString(out, "")
	out = fenceClose.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

func parseExtraction(raw string) (domain.Extraction, error) {
	var ext domain.Extraction
	if err := json.Unmarshal([]byte(stripFences(raw)), &ext); err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: %v", domain.ErrBadExtraction, err)
	}
	return ext, nil
}

// buildContext assembles the extractor prompt: the instruction
// preamble, the most recent history entries oldest first, and the
// current user message.
func buildContext(preamble string, history []domain.TurnEntry, userText string) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\n")

	recent := history
	if len(recent) > historyWindow {
		recent = recent[len(recent)-historyWindow:]
	}
	if len(recent) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, e := range recent {
			switch e.Role {
			case domain.RoleAssistant:
				b.WriteString("Assistant: ")
			default:
				b.WriteString("User: ")
			}
			b.WriteString(e.Text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Current user message: ")
	b.WriteString(userText)
	return b.String()
}
