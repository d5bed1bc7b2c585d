package usecases

import (
	"fmt"
	"math/rand"
	"strings"
)

// Keyword families for the deterministic offline responder. Classification is
// case-insensitive substring matching; "other" has no pool and gets a single
// fixed help message.
type promptFamily string

const (
	familyGreeting   promptFamily = "greeting"
	familyDirections promptFamily = "directions"
	familyEvents     promptFamily = "events"
	familyCulture    promptFamily = "culture"
	familyOther      promptFamily = "other"
)

var familyKeywords = []struct {
	family   promptFamily
	keywords []string
}{
	{familyGreeting, []string{"hello", "hi", "hey", "greeting"}},
	{familyDirections, []string{"direction", "how to get", "route", "where is"}},
	{familyEvents, []string{"event", "activity", "happening"}},
	{familyCulture, []string{"culture", "local", "tradition", "custom"}},
}

var cannedResponses = map[promptFamily][]string{
	familyGreeting: {
		"Hello! I'm your AI travel companion. How can I help you explore today?",
		"Hi traveler! Ready for an adventure? What would you like to know?",
		"Welcome! I'm here to help make your journey amazing. What do you need?",
	},
	familyDirections: {
		"Head north for about 500 meters, then turn left at the main intersection.",
		"Walk straight for 2 blocks, you'll see it on your right.",
		"It's just a 10-minute walk from your current location.",
	},
	familyEvents: {
		"I found some exciting events near you! Check out the Events page.",
		"There's a music night happening tonight near the beach!",
		"You might enjoy the cultural festival happening this weekend.",
	},
	familyCulture: {
		"The locals here love their traditional cuisine, especially the spicy fish curry!",
		"This area is known for its beautiful temples and rich history.",
		"Did you know this region has a unique festival every monsoon?",
	},
}

const fallbackHelpMessage = "I'm here to help! Try asking about places to visit, events, directions, or local culture."

// classifyPrompt returns the keyword family for an utterance.
func classifyPrompt(prompt string) promptFamily {
	lower := strings.ToLower(prompt)
	for _, fk := range familyKeywords {
		for _, kw := range fk.keywords {
			if strings.Contains(lower, kw) {
				return fk.family
			}
		}
	}
	return familyOther
}

// cannedResponse returns one equal-probability response from the family pool.
func cannedResponse(prompt string) string {
	family := classifyPrompt(prompt)
	pool, ok := cannedResponses[family]
	if !ok || len(pool) == 0 {
		return fallbackHelpMessage
	}
	return pool[rand.Intn(len(pool))]
}

// fallbackItinerary renders the offline itinerary template, reporting the
// requested budget, location, and duration verbatim.
func fallbackItinerary(budget float64, location, duration string) string {
	return fmt.Sprintf("Here's your %s itinerary for %s within ₹%.0f:\n\n"+
		"Morning: Visit local temples and cultural sites (Free entry)\n"+
		"Afternoon: Enjoy local street food (₹100-200)\n"+
		"Evening: Beach walk and sunset viewing (Free)\n"+
		"Night: Local music event or cultural performance (₹100-300)\n\n"+
		"Total estimated cost: ₹%.0f", duration, location, budget, budget)
}

var storyTemplates = []string{
	"%s has a rich history dating back centuries. Legends say it was once a sacred ground where travelers would rest.",
	"Visitors to %s often remark about its stunning architecture and peaceful atmosphere.",
	"Local folklore tells tales of %s being a meeting point for ancient traders.",
}

// fallbackStory picks one offline travel-story template for a place.
func fallbackStory(place string) string {
	return fmt.Sprintf(storyTemplates[rand.Intn(len(storyTemplates))], place)
}

var suggestionTemplates = []string{
	"Based on your interest in %s, I suggest checking out the cultural events happening in %s this week!",
	"There's a %s themed meetup near %s tomorrow evening.",
	"Travelers interested in %s are organizing a group activity in %s. Check the Events board!",
}

// EventSuggestion renders a templated suggestion for an interest and location.
func EventSuggestion(interest, location string) string {
	return fmt.Sprintf(suggestionTemplates[rand.Intn(len(suggestionTemplates))], interest, location)
}
