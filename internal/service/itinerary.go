package service

import (
	"context"
	"fmt"
	"log/slog"

	"skyplan/internal/ai"
)

// ItineraryPreferences are the free-text trip preferences entered by the user.
type ItineraryPreferences struct {
	Budget              string `json:"budget"`
	TravelStyle         string `json:"travelStyle"`
	Interests           string `json:"interests"`
	Duration            string `json:"duration"`
	LocationPreferences string `json:"locationPreferences"`
}

// Itinerary is the generated plan. Fallback is set when the canned text was
// returned because the model could not be reached.
type Itinerary struct {
	Itinerary string `json:"itinerary"`
	Fallback  bool   `json:"fallback"`
}

// ItineraryPlanner turns preferences into an itinerary through an LLM.
type ItineraryPlanner struct {
	llm ai.LLMProvider
}

func NewItineraryPlanner(llm ai.LLMProvider) *ItineraryPlanner {
	return &ItineraryPlanner{llm: llm}
}

// GenerateItinerary never fails: any provider error is logged and replaced
// by a generic suggestion list built from the same preferences.
func (p *ItineraryPlanner) GenerateItinerary(ctx context.Context, prefs ItineraryPreferences) Itinerary {
	text, err := p.llm.GenerateResponse(ctx, itineraryPrompt(prefs), "")
	if err != nil {
		slog.WarnContext(ctx, "itinerary generation failed", "error", err, "location", prefs.LocationPreferences)
		return Itinerary{Itinerary: itineraryFallback(prefs), Fallback: true}
	}
	return Itinerary{Itinerary: text}
}

func itineraryPrompt(prefs ItineraryPreferences) string {
	return fmt.Sprintf(`You are a travel expert who creates personalized travel itineraries.

Based on the user's preferences, generate a detailed travel itinerary with destination ideas and activity suggestions.
Consider the budget, travel style, interests, duration, and location preferences provided by the user.
Provide specific suggestions for destinations, accommodations, activities, and dining.

Preferences:
Budget: %s
Travel Style: %s
Interests: %s
Duration: %s days
Location Preferences: %s

Please provide a comprehensive travel itinerary:`,
		prefs.Budget, prefs.TravelStyle, prefs.Interests, prefs.Duration, prefs.LocationPreferences)
}

func itineraryFallback(prefs ItineraryPreferences) string {
	return fmt.Sprintf(`I apologize, but I'm having trouble generating a travel itinerary right now. Here are some general suggestions for your %s trip:

• Research popular destinations in %s
• Consider your %s budget when selecting accommodations
• Look for activities that match your interest in %s
• Plan for %s days with a mix of %s experiences

Please try again in a moment for a more detailed itinerary.`,
		prefs.LocationPreferences, prefs.LocationPreferences, prefs.Budget,
		prefs.Interests, prefs.Duration, prefs.TravelStyle)
}
