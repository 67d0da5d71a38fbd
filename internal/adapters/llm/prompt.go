package llm

import (
	"fmt"
	"strings"
	"time"
)

// ExtractionPreamble is the instruction block prefixed to every
// extraction turn. The engine treats it as an opaque template.
const ExtractionPreamble = `You are a travel planning assistant. Your only job is to extract trip
details from the conversation.

Respond with a single JSON object and nothing else. The object has
exactly these keys:
- "origin": the city the user is travelling from
- "destination": the city the user is travelling to
- "start_date": trip start date in YYYY-MM-DD format
- "end_date": trip end date in YYYY-MM-DD format
- "follow_up": one short, friendly question asking for whatever is
  still missing; empty string when nothing is missing

Rules:
- Only fill a field when the user has clearly provided it. Use an
  empty string for anything you are not sure about.
- Never invent dates or cities.
- If the user gives dates without a year, assume the next occurrence.
- Keep values you learned in earlier turns unless the user corrects
  them.
- Do not wrap the JSON in markdown fences or add commentary.`

const itineraryTemplate = `You are an experienced travel planner. Create a day-by-day itinerary for
a trip from %s to %s, arriving %s and leaving %s.

For each day, suggest a morning, afternoon and evening activity with a
one-line reason. Mix well-known sights with local favorites. Mention
neighborhoods by name. Keep it practical: group nearby activities on
the same day.%s`

const routeSummaryTemplate = `In 3-4 sentences, describe the journey from %s to %s: typical travel
options, rough travel time, and one tip worth knowing before booking.`

// ItineraryPrompt fills the itinerary template with human-readable
// dates, optionally steering it toward the traveller's interests.
func ItineraryPrompt(origin, destination string, start, end time.Time, interests []string) string {
	extra := ""
	if len(interests) > 0 {
		extra = "\n\nThe traveller is especially interested in: " + strings.Join(interests, ", ") + "."
	}
	return fmt.Sprintf(itineraryTemplate,
		origin,
		destination,
		start.Format("January 2, 2006"),
		end.Format("January 2, 2006"),
		extra,
	)
}

func RouteSummaryPrompt(origin, destination string) string {
	return fmt.Sprintf(routeSummaryTemplate, origin, destination)
}
