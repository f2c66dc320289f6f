package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"synaptech/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	resp string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.resp, f.err
}

func (f *fakeGenerator) Name() string { return "fake" }

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(gen *fakeGenerator) *Engine {
	var e *Engine
	if gen == nil {
		e = NewEngine(nil, time.UTC)
	} else {
		e = NewEngine(gen, time.UTC)
	}
	e.now = func() time.Time { return testNow }
	return e
}

func TestExtractWithoutProvider(t *testing.T) {
	e := newTestEngine(nil)

	got, degraded := e.Extract(context.Background(), "comprar leche urgente", "")
	assert.True(t, degraded)
	assert.Equal(t, "comprar leche urgente", got.Title)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.Equal(t, testNow.Add(24*time.Hour), got.DueDate)
	assert.Equal(t, "comprar leche urgente", got.Body)
}

func TestExtractEmptyInputBoundary(t *testing.T) {
	e := newTestEngine(nil)

	got, degraded := e.Extract(context.Background(), "", "")
	assert.True(t, degraded)
	assert.Equal(t, "Nueva tarea", got.Title)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.WithinDuration(t, testNow.Add(24*time.Hour), got.DueDate, time.Second)
	assert.Empty(t, got.Body)
}

func TestExtractHintedDateWins(t *testing.T) {
	e := newTestEngine(nil)

	got, degraded := e.Extract(context.Background(), "revisar contrato", "2026-04-01T09:00:00")
	assert.True(t, degraded)
	assert.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), got.DueDate)
}

func TestExtractValidResponse(t *testing.T) {
	gen := &fakeGenerator{resp: `{
		"title": "Comprar leche",
		"priority": "urgent",
		"due_date": "2026-03-10T18:00:00",
		"body": "Pasar al supermercado antes de las 6pm"
	}`}
	e := newTestEngine(gen)

	got, degraded := e.Extract(context.Background(), "comprar leche urgente ya", "")
	assert.False(t, degraded)
	assert.Equal(t, "Comprar leche", got.Title)
	assert.Equal(t, model.PriorityUrgent, got.Priority)
	assert.Equal(t, time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC), got.DueDate)
	assert.Equal(t, "Pasar al supermercado antes de las 6pm", got.Body)
}

func TestExtractMarkdownFencedResponse(t *testing.T) {
	gen := &fakeGenerator{resp: "```json\n{\"title\": \"Llamar al doctor\", \"priority\": \"high\", \"due_date\": \"2026-03-11T10:00:00\", \"body\": \"Agendar cita\"}\n```"}
	e := newTestEngine(gen)

	got, degraded := e.Extract(context.Background(), "llamar al doctor pronto", "")
	assert.False(t, degraded)
	assert.Equal(t, "Llamar al doctor", got.Title)
	assert.Equal(t, model.PriorityHigh, got.Priority)
}

func TestExtractGarbageResponseFallsBack(t *testing.T) {
	gen := &fakeGenerator{resp: "lo siento, no puedo ayudar con eso"}
	e := newTestEngine(gen)

	got, degraded := e.Extract(context.Background(), "pagar la renta", "")
	assert.True(t, degraded)
	assert.Equal(t, "pagar la renta", got.Title)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.Equal(t, "pagar la renta", got.Body)
}

func TestExtractProviderErrorFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("deadline exceeded")}
	e := newTestEngine(gen)

	got, degraded := e.Extract(context.Background(), "pagar la renta", "2026-03-15")
	assert.True(t, degraded)
	assert.Equal(t, "pagar la renta", got.Title)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got.DueDate)
}

func TestExtractInvalidPriorityCoerced(t *testing.T) {
	gen := &fakeGenerator{resp: `{"title": "t", "priority": "critical", "due_date": "2026-03-11T00:00:00", "body": "b"}`}
	e := newTestEngine(gen)

	got, degraded := e.Extract(context.Background(), "algo", "")
	assert.False(t, degraded)
	assert.Equal(t, model.PriorityMedium, got.Priority)
}

func TestExtractMissingFieldsDefaulted(t *testing.T) {
	gen := &fakeGenerator{resp: `{"priority": "low"}`}
	e := newTestEngine(gen)

	got, degraded := e.Extract(context.Background(), "organizar el escritorio", "")
	assert.False(t, degraded)
	assert.Equal(t, "organizar el escritorio", got.Title)
	assert.Equal(t, model.PriorityLow, got.Priority)
	assert.Equal(t, testNow.Add(24*time.Hour), got.DueDate)
	assert.Equal(t, "organizar el escritorio", got.Body)
}

func TestExtractTitleNeverExceedsLimit(t *testing.T) {
	long := strings.Repeat("tarea muy larga ", 20)
	gen := &fakeGenerator{resp: `{"title": "` + long + `"}`}
	e := newTestEngine(gen)

	got, _ := e.Extract(context.Background(), long, "")
	assert.LessOrEqual(t, len([]rune(got.Title)), 100)

	// Same property on the pure fallback path.
	fb, degraded := newTestEngine(nil).Extract(context.Background(), long, "")
	assert.True(t, degraded)
	assert.LessOrEqual(t, len([]rune(fb.Title)), 100)
}

func TestExtractAlwaysValid(t *testing.T) {
	// Whatever the provider does, the result must carry a bounded title, a
	// known priority and a non-zero due date.
	responses := []string{
		"", "null", "[]", "{}", `{"priority": "??"}`, "```json\ngarbage\n```",
	}
	for _, resp := range responses {
		e := newTestEngine(&fakeGenerator{resp: resp})
		got, _ := e.Extract(context.Background(), "hacer algo", "")

		require.NotEmpty(t, got.Title)
		assert.LessOrEqual(t, len([]rune(got.Title)), 100)
		assert.True(t, got.Priority.Valid(), "resp %q produced priority %q", resp, got.Priority)
		assert.False(t, got.DueDate.IsZero())
	}
}
