// Package stages defines the canonical set of content-generation stages
// for an itinerary and their default prompt templates.
package stages

import (
	"github.com/jonathan/travel-planner/internal/prompts"
)

// Canonical stage identifiers, in pipeline execution order.
const (
	StageFramework = "framework" // structural day-by-day framework
	StageDaily     = "daily"     // per-day detail
	StageTransport = "transport"
	StageNarrative = "narrative" // descriptive narrative
	StageTips      = "tips"      // practical tips
	StageSafety    = "safety"    // safety notice
)

// promptFile is the embedded template file holding one entry per stage.
const promptFile = "stages.json"

// StageDefinition defines metadata for a generation stage.
type StageDefinition struct {
	ID       string
	Title    string
	Template string
}

// Registry holds all stage definitions keyed by stage id.
var Registry = map[string]StageDefinition{
	StageFramework: {
		ID:       StageFramework,
		Title:    "Trip framework",
		Template: prompts.MustGet(promptFile, StageFramework),
	},
	StageDaily: {
		ID:       StageDaily,
		Title:    "Daily plan",
		Template: prompts.MustGet(promptFile, StageDaily),
	},
	StageTransport: {
		ID:       StageTransport,
		Title:    "Getting around",
		Template: prompts.MustGet(promptFile, StageTransport),
	},
	StageNarrative: {
		ID:       StageNarrative,
		Title:    "Destination narrative",
		Template: prompts.MustGet(promptFile, StageNarrative),
	},
	StageTips: {
		ID:       StageTips,
		Title:    "Practical tips",
		Template: prompts.MustGet(promptFile, StageTips),
	},
	StageSafety: {
		ID:       StageSafety,
		Title:    "Safety notice",
		Template: prompts.MustGet(promptFile, StageSafety),
	},
}

// canonicalOrder is the full pipeline order used when a run does not
// request a specific stage list.
var canonicalOrder = []string{
	StageFramework,
	StageDaily,
	StageTransport,
	StageNarrative,
	StageTips,
	StageSafety,
}

// CanonicalOrder returns a copy of the full stage order.
func CanonicalOrder() []string {
	out := make([]string, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// Valid reports whether id names a canonical stage.
func Valid(id string) bool {
	_, ok := Registry[id]
	return ok
}

// Get returns the definition for a stage id.
func Get(id string) (StageDefinition, bool) {
	def, ok := Registry[id]
	return def, ok
}

// Normalize filters a requested stage list down to valid canonical ids,
// removing duplicates while preserving first-occurrence order. An empty
// list yields the full canonical order.
func Normalize(requested []string) []string {
	if len(requested) == 0 {
		return CanonicalOrder()
	}

	seen := make(map[string]bool, len(requested))
	var out []string
	for _, id := range requested {
		if !Valid(id) || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
