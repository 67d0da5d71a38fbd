package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smoralesv/itinera/internal/domain"
)

func TestStripFences(t *testing.T) {
	fenced := "```json\n{\"origin\":\"NYC\"}\n```"
	plain := "{\"origin\":\"NYC\"}"

	assert.Equal(t, plain, stripFences(fenced))
	assert.Equal(t, plain, stripFences(plain))
	assert.Equal(t, plain, stripFences("```\n"+plain+"\n```"))
	assert.Equal(t, plain, stripFences("  \n"+plain+"\n  "))

	// Stripping is idempotent.
	assert.Equal(t, stripFences(fenced), stripFences(stripFences(fenced)))
}

func TestParseExtraction(t *testing.T) {
	ext, err := parseExtraction("```json\n{\"origin\":\"Boston\",\"follow_up\":\"When?\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Boston", ext.Origin)
	assert.Equal(t, "When?", ext.FollowUp)

	_, err = parseExtraction("I could not find any trip details.")
	require.ErrorIs(t, err, domain.ErrBadExtraction)
}

func TestBuildContextWindow(t *testing.T) {
	history := []domain.TurnEntry{
		{Role: domain.RoleUser, Text: "first"},
		{Role: domain.RoleAssistant, Text: "second"},
		{Role: domain.RoleUser, Text: "third"},
		{Role: domain.RoleAssistant, Text: "fourth"},
	}

	got := buildContext("PREAMBLE", history, "hello")

	assert.Contains(t, got, "PREAMBLE")
	assert.Contains(t, got, "Assistant: second")
	assert.Contains(t, got, "User: third")
	assert.Contains(t, got, "Assistant: fourth")
	assert.NotContains(t, got, "first")
	assert.Contains(t, got, "Current user message: hello")
}

func TestBuildContextEmptyHistory(t *testing.T) {
	got := buildContext("PREAMBLE", nil, "hello")
	assert.NotContains(t, got, "Previous conversation:")
	assert.Contains(t, got, "Current user message: hello")
}
