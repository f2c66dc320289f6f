package routine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"synaptech/internal/ai"
	"synaptech/internal/model"
)

// Suggestion pairs a task from the input batch with a routine recommendation.
// TaskID always references a task that was supplied by the caller; the
// engine never invents task identifiers.
type Suggestion struct {
	TaskID int64  `json:"id_tarea"`
	Body   string `json:"cuerpo"`
}

const maxSuggestions = 5

// Engine ranks and groups a user's pending tasks into actionable routine
// suggestions, degrading to a deterministic priority sort when the
// generative provider is unavailable or unreliable.
type Engine struct {
	gen ai.Generator
}

// NewEngine creates a suggestion engine. A nil provider means every call
// takes the fallback path.
func NewEngine(gen ai.Generator) *Engine {
	return &Engine{gen: gen}
}

// Suggest produces up to 5 routine suggestions for the given pending tasks.
// With no provider configured the tasks are mapped directly in input order;
// on any call or parse failure the tasks are ordered by priority instead.
// An empty input always yields an empty result.
func (e *Engine) Suggest(ctx context.Context, tasks []model.Task) []Suggestion {
	if len(tasks) == 0 {
		return []Suggestion{}
	}
	if e.gen == nil {
		out := make([]Suggestion, 0, maxSuggestions)
		for _, t := range tasks {
			if len(out) == maxSuggestions {
				break
			}
			body := t.Body
			if body == "" {
				body = t.Title
			}
			out = append(out, Suggestion{TaskID: t.ID, Body: body})
		}
		return out
	}

	raw, err := e.gen.Generate(ctx, BuildSuggestionPrompt(tasks))
	if err != nil {
		log.Printf("[Routine] %s call failed, degrading to priority sort: %v", e.gen.Name(), err)
		return prioritySortFallback(tasks)
	}

	var parsed []Suggestion
	if err := json.Unmarshal([]byte(ai.StripMarkdownFences(raw)), &parsed); err != nil {
		log.Printf("[Routine] unparseable %s response, degrading to priority sort: %v", e.gen.Name(), err)
		return prioritySortFallback(tasks)
	}
	// A well-formed empty array is a valid answer: no suggestions today.
	if len(parsed) == 0 {
		return []Suggestion{}
	}

	// Drop any suggestion whose task id is not in the input batch.
	known := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		known[t.ID] = true
	}
	out := make([]Suggestion, 0, len(parsed))
	for _, s := range parsed {
		if !known[s.TaskID] {
			log.Printf("[Routine] dropping suggestion for unknown task id %d", s.TaskID)
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		log.Printf("[Routine] no usable suggestions in response, degrading to priority sort")
		return prioritySortFallback(tasks)
	}
	return out
}

// prioritySortFallback orders tasks urgent, high, medium, low (ties keep
// input order), takes the first 5 and emits "<title> - Prioridad: <priority>".
func prioritySortFallback(tasks []model.Task) []Suggestion {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
	})

	out := make([]Suggestion, 0, maxSuggestions)
	for _, t := range sorted {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, Suggestion{
			TaskID: t.ID,
			Body:   fmt.Sprintf("%s - Prioridad: %s", t.Title, t.Priority),
		})
	}
	return out
}
