package generation

import (
	"strings"

	"github.com/jonathan/travel-planner/internal/db"
	"github.com/jonathan/travel-planner/internal/prompts"
	"github.com/jonathan/travel-planner/internal/stages"
)

// fallbackDestination is substituted when an itinerary has neither a
// destination nor a usable title.
const fallbackDestination = "the destination"

// BuildPrompt renders the final prompt for a stage: the stage's default
// template with the itinerary's destination substituted, plus any
// free-text guidance as a delimited suffix. Pure and deterministic.
func BuildPrompt(it *db.Itinerary, stageID, extra string) (string, error) {
	def, ok := stages.Get(stageID)
	if !ok {
		return "", &InvalidStageError{Stage: stageID}
	}

	prompt := prompts.Format(def.Template, map[string]string{
		"Destination": destinationLabel(it),
	})

	if guidance := strings.TrimSpace(extra); guidance != "" {
		prompt += "\n\nAdditional guidance from the traveler:\n" + guidance
	}

	return prompt, nil
}

// destinationLabel resolves the destination text for prompt templates,
// preferring the explicit destination field over the title.
func destinationLabel(it *db.Itinerary) string {
	if d := strings.TrimSpace(it.Destination); d != "" {
		return d
	}
	if t := strings.TrimSpace(it.Title); t != "" {
		return t
	}
	return fallbackDestination
}
