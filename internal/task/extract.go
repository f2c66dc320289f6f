package task

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"synaptech/internal/ai"
	"synaptech/internal/model"
)

// Extracted is the structured task produced from free-form input. Every
// field is always populated: extraction degrades to deterministic defaults
// instead of failing.
type Extracted struct {
	Title    string         `json:"title"`
	Priority model.Priority `json:"priority"`
	DueDate  time.Time      `json:"due_date"`
	Body     string         `json:"body"`
}

const (
	fallbackTitle = "Nueva tarea"
	maxTitleLen   = 100
)

// dateLayouts accepted for hinted dates and model-returned due dates.
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Engine turns normalized user input into an Extracted task. The generative
// provider is injected; a nil provider means every call takes the heuristic
// fallback path.
type Engine struct {
	gen ai.Generator
	loc *time.Location
	now func() time.Time
}

// NewEngine creates an extraction engine. loc is the timezone used for
// fallback due dates; nil means server local time.
func NewEngine(gen ai.Generator, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{gen: gen, loc: loc, now: time.Now}
}

// Extract produces a structured task from normalized input. It never fails:
// when the provider is unconfigured, unreachable, or returns unusable
// content, the result is built from deterministic defaults and degraded is
// true. The hinted date, when parseable, always wins over derived defaults.
func (e *Engine) Extract(ctx context.Context, input, hintedDate string) (Extracted, bool) {
	if e.gen == nil {
		return e.fallback(input, hintedDate), true
	}

	raw, err := e.gen.Generate(ctx, BuildExtractionPrompt(input, hintedDate))
	if err != nil {
		log.Printf("[Extract] %s call failed, degrading to fallback: %v", e.gen.Name(), err)
		return e.fallback(input, hintedDate), true
	}

	var resp struct {
		Title    string `json:"title"`
		Priority string `json:"priority"`
		DueDate  string `json:"due_date"`
		Body     string `json:"body"`
	}
	if err := json.Unmarshal([]byte(ai.StripMarkdownFences(raw)), &resp); err != nil {
		log.Printf("[Extract] unparseable %s response, degrading to fallback: %v", e.gen.Name(), err)
		return e.fallback(input, hintedDate), true
	}

	out := Extracted{
		Title:    resp.Title,
		Priority: model.Priority(resp.Priority),
		Body:     resp.Body,
	}

	if out.Title == "" {
		out.Title = defaultTitle(input)
		log.Printf("[Extract] title missing in response, using input prefix")
	}
	out.Title = truncate(out.Title, maxTitleLen)

	if !out.Priority.Valid() {
		if resp.Priority != "" {
			log.Printf("[Extract] invalid priority %q, coercing to medium", resp.Priority)
		}
		out.Priority = model.PriorityMedium
	}

	if due, ok := e.parseDate(resp.DueDate); ok {
		out.DueDate = due
	} else {
		out.DueDate = e.defaultDueDate(hintedDate)
		log.Printf("[Extract] due date missing or unparseable, using policy default")
	}

	if out.Body == "" {
		out.Body = input
	}

	return out, false
}

// fallback is the fully deterministic path: truncated input as title, medium
// priority, hinted date or now+1 day, input as body.
func (e *Engine) fallback(input, hintedDate string) Extracted {
	return Extracted{
		Title:    defaultTitle(input),
		Priority: model.PriorityMedium,
		DueDate:  e.defaultDueDate(hintedDate),
		Body:     input,
	}
}

func (e *Engine) defaultDueDate(hintedDate string) time.Time {
	if due, ok := e.parseDate(hintedDate); ok {
		return due
	}
	return e.now().In(e.loc).Add(24 * time.Hour)
}

func (e *Engine) parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, e.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func defaultTitle(input string) string {
	if input == "" {
		return fallbackTitle
	}
	return truncate(input, maxTitleLen)
}

// truncate limits s to max characters, not bytes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
