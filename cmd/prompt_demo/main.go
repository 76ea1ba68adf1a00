package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"skyplan/internal/ai"
	"skyplan/internal/config"
	"skyplan/internal/service"
)

// defaultDuration is a bare number of days; the itinerary prompt adds the unit.
const defaultDuration = "4"

func main() {
	query := flag.String("query", "I want to fly to Paris next weekend with my partner", "flight search text to parse")
	budget := flag.String("budget", "£1500", "itinerary budget")
	duration := flag.String("duration", defaultDuration, "trip duration in days")
	location := flag.String("location", "Paris", "destination preferences")
	interests := flag.String("interests", "food, museums", "interests")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.LLM.Timeout)
	defer cancel()

	llm, closeLLM, err := ai.NewProvider(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer closeLLM()

	fmt.Printf("Query: %s\n", *query)
	parsed := service.NewFlightQueryParser(llm).ParseFlightQuery(ctx, *query)
	fmt.Printf("Destination: %s\n", parsed.Destination)
	fmt.Printf("Dates: %s\n", parsed.Dates)
	fmt.Printf("Other details: %s\n", parsed.OtherDetails)

	start := time.Now()
	itinerary := service.NewItineraryPlanner(llm).GenerateItinerary(ctx, service.ItineraryPreferences{
		Budget:              *budget,
		Duration:            *duration,
		LocationPreferences: *location,
		Interests:           *interests,
	})
	fmt.Printf("\nItinerary (fallback=%v, %s):\n%s\n", itinerary.Fallback, time.Since(start).Round(time.Millisecond), itinerary.Itinerary)
}
