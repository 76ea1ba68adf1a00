package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"skyplan/internal/ai"
)

// FlightQuery holds the fields extracted from a free-text flight search.
// Empty strings mean the field could not be extracted.
type FlightQuery struct {
	Destination  string `json:"destination,omitempty"`
	Dates        string `json:"dates,omitempty"`
	OtherDetails string `json:"otherDetails,omitempty"`
	// ResolvedDestination is the geocoded form of Destination, when a resolver is configured.
	ResolvedDestination string `json:"resolvedDestination,omitempty"`
	// Failed is set when the model could not be reached and OtherDetails
	// carries the error marker instead of extracted text.
	Failed bool `json:"-"`
}

// Empty reports whether nothing was extracted.
func (q FlightQuery) Empty() bool {
	return q.Destination == "" && q.Dates == "" && q.OtherDetails == ""
}

// PlaceResolver maps a free-text place name to a canonical address.
type PlaceResolver interface {
	Resolve(ctx context.Context, place string) (string, error)
}

// FlightQueryParser extracts structured search fields from user text via an LLM.
type FlightQueryParser struct {
	llm      ai.LLMProvider
	resolver PlaceResolver
}

type FlightQueryOption func(*FlightQueryParser)

// WithPlaceResolver enables destination resolution on parsed queries.
func WithPlaceResolver(r PlaceResolver) FlightQueryOption {
	return func(p *FlightQueryParser) { p.resolver = r }
}

func NewFlightQueryParser(llm ai.LLMProvider, opts ...FlightQueryOption) *FlightQueryParser {
	p := &FlightQueryParser{llm: llm}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Best-effort patterns for replies that are not JSON. Non-normative.
var (
	destinationPattern  = regexp.MustCompile(`(?i)destination[:\s]+(.*?)(?:\n|$)`)
	datesPattern        = regexp.MustCompile(`(?i)dates?[:\s]+(.*?)(?:\n|$)`)
	otherDetailsPattern = regexp.MustCompile(`(?i)other\s+details[:\s]+(.*?)(?:\n|$)`)
)

// ParseFlightQuery never fails. On a provider error the query is echoed back
// in OtherDetails with an error marker.
func (p *FlightQueryParser) ParseFlightQuery(ctx context.Context, query string) FlightQuery {
	reply, err := p.llm.GenerateResponse(ctx, flightQueryPrompt(query), "")
	if err != nil {
		slog.WarnContext(ctx, "flight query parsing failed", "error", err)
		return FlightQuery{OtherDetails: "Error parsing query: " + query, Failed: true}
	}

	out, ok := parseFlightQueryJSON(reply)
	if !ok {
		out = FlightQuery{
			Destination:  extract(destinationPattern, reply),
			Dates:        extract(datesPattern, reply),
			OtherDetails: extract(otherDetailsPattern, reply),
		}
	}

	if p.resolver != nil && out.Destination != "" {
		resolved, err := p.resolver.Resolve(ctx, out.Destination)
		if err != nil {
			slog.InfoContext(ctx, "destination not resolved", "destination", out.Destination, "error", err)
		} else {
			out.ResolvedDestination = resolved
		}
	}
	return out
}

func flightQueryPrompt(query string) string {
	return fmt.Sprintf(`You are a flight search assistant. Extract the destination, dates, and any other relevant details from the following user query:

Query: %s

Please respond with a JSON object containing:
{
  "destination": "extracted destination or null",
  "dates": "extracted dates or null", 
  "otherDetails": "any other relevant details or null"
}`, query)
}

// parseFlightQueryJSON accepts a JSON object, optionally fenced. Keys that
// are missing, null or falsy yield empty fields.
func parseFlightQueryJSON(reply string) (FlightQuery, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(ai.CleanJSON(reply)), &raw); err != nil || raw == nil {
		return FlightQuery{}, false
	}
	return FlightQuery{
		Destination:  truthyString(raw["destination"]),
		Dates:        truthyString(raw["dates"]),
		OtherDetails: truthyString(raw["otherDetails"]),
	}, true
}

func truthyString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		if t == 0 {
			return ""
		}
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func extract(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
