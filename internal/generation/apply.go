package generation

import (
	"github.com/jonathan/travel-planner/internal/db"
	"github.com/jonathan/travel-planner/internal/stages"
)

// summaryMaxLen bounds the itinerary summary taken from the framework
// stage's text, in runes.
const summaryMaxLen = 200

// applyResult records a stage's generated text on the in-run working
// copy of the itinerary. The framework stage additionally overwrites
// the summary with a bounded prefix of its text. Later stages of the
// same run observe the returned view; nothing is persisted here.
func applyResult(it *db.Itinerary, stageID, text string) *db.Itinerary {
	if it.AISources == nil {
		it.AISources = make(map[string]string)
	}
	it.AISources[stageID] = text

	if stageID == stages.StageFramework {
		it.Summary = summaryPrefix(text)
	}

	return it
}

// summaryPrefix returns at most summaryMaxLen runes of text.
func summaryPrefix(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryMaxLen {
		return text
	}
	return string(runes[:summaryMaxLen])
}

// workingCopy clones the fields of an itinerary that a run mutates, so
// a failed run leaves the caller's view untouched.
func workingCopy(it *db.Itinerary) *db.Itinerary {
	clone := *it
	clone.AISources = make(map[string]string, len(it.AISources))
	for k, v := range it.AISources {
		clone.AISources[k] = v
	}
	return &clone
}
