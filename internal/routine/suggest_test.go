package routine

import (
	"context"
	"errors"
	"testing"

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

func pendingTasks() []model.Task {
	return []model.Task{
		{ID: 1, Title: "Ordenar papeles", Body: "Revisar el archivero", Priority: model.PriorityMedium, Status: model.StatusPending},
		{ID: 2, Title: "Pagar la renta", Priority: model.PriorityUrgent, Status: model.StatusPending},
		{ID: 3, Title: "Leer un libro", Body: "Capítulo 4", Priority: model.PriorityLow, Status: model.StatusPending},
		{ID: 4, Title: "Preparar presentación", Priority: model.PriorityHigh, Status: model.StatusPending},
	}
}

func TestSuggestEmptyInput(t *testing.T) {
	e := NewEngine(&fakeGenerator{resp: "[]"})
	assert.Empty(t, e.Suggest(context.Background(), nil))
	assert.Empty(t, e.Suggest(context.Background(), []model.Task{}))
}

func TestSuggestWithoutProvider(t *testing.T) {
	e := NewEngine(nil)

	got := e.Suggest(context.Background(), pendingTasks())
	require.Len(t, got, 4)

	// Input order, body falling back to title when empty.
	assert.Equal(t, int64(1), got[0].TaskID)
	assert.Equal(t, "Revisar el archivero", got[0].Body)
	assert.Equal(t, int64(2), got[1].TaskID)
	assert.Equal(t, "Pagar la renta", got[1].Body)
}

func TestSuggestWithoutProviderCapsAtFive(t *testing.T) {
	e := NewEngine(nil)

	tasks := make([]model.Task, 8)
	for i := range tasks {
		tasks[i] = model.Task{ID: int64(i + 1), Title: "t", Priority: model.PriorityMedium}
	}
	assert.Len(t, e.Suggest(context.Background(), tasks), 5)
}

func TestSuggestParseFailureFallsBackToPrioritySort(t *testing.T) {
	e := NewEngine(&fakeGenerator{resp: "no puedo generar rutinas"})

	got := e.Suggest(context.Background(), pendingTasks())
	require.Len(t, got, 4)

	// urgent, high, medium, low
	assert.Equal(t, int64(2), got[0].TaskID)
	assert.Equal(t, int64(4), got[1].TaskID)
	assert.Equal(t, int64(1), got[2].TaskID)
	assert.Equal(t, int64(3), got[3].TaskID)

	assert.Equal(t, "Pagar la renta - Prioridad: urgent", got[0].Body)
}

func TestSuggestCallFailureFallsBackToPrioritySort(t *testing.T) {
	e := NewEngine(&fakeGenerator{err: errors.New("unavailable")})

	got := e.Suggest(context.Background(), pendingTasks())
	require.Len(t, got, 4)
	assert.Equal(t, int64(2), got[0].TaskID)
}

func TestSuggestFallbackStableOnTies(t *testing.T) {
	e := NewEngine(&fakeGenerator{err: errors.New("unavailable")})

	tasks := []model.Task{
		{ID: 10, Title: "a", Priority: model.PriorityHigh},
		{ID: 11, Title: "b", Priority: model.PriorityHigh},
		{ID: 12, Title: "c", Priority: model.PriorityHigh},
	}
	got := e.Suggest(context.Background(), tasks)
	require.Len(t, got, 3)
	assert.Equal(t, int64(10), got[0].TaskID)
	assert.Equal(t, int64(11), got[1].TaskID)
	assert.Equal(t, int64(12), got[2].TaskID)
}

func TestSuggestValidResponse(t *testing.T) {
	e := NewEngine(&fakeGenerator{resp: "```json\n" + `[
		{"id_tarea": 2, "cuerpo": "Mañana (8:00-8:30) - pagar la renta primero"},
		{"id_tarea": 4, "cuerpo": "Tarde (15:00) - preparar presentación en bloques de 25min"}
	]` + "\n```"})

	got := e.Suggest(context.Background(), pendingTasks())
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].TaskID)
	assert.Equal(t, "Mañana (8:00-8:30) - pagar la renta primero", got[0].Body)
}

func TestSuggestNeverFabricatesTaskIDs(t *testing.T) {
	e := NewEngine(&fakeGenerator{resp: `[
		{"id_tarea": 2, "cuerpo": "ok"},
		{"id_tarea": 999, "cuerpo": "invented"}
	]`})

	got := e.Suggest(context.Background(), pendingTasks())
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].TaskID)
}

func TestSuggestParsedEmptyArrayIsEmpty(t *testing.T) {
	// A well-formed empty array means "no suggestions", not a failure.
	for _, resp := range []string{"[]", "```json\n[]\n```"} {
		e := NewEngine(&fakeGenerator{resp: resp})
		assert.Empty(t, e.Suggest(context.Background(), pendingTasks()), "resp %q", resp)
	}
}

func TestSuggestAllFabricatedFallsBack(t *testing.T) {
	e := NewEngine(&fakeGenerator{resp: `[{"id_tarea": 999, "cuerpo": "invented"}]`})

	got := e.Suggest(context.Background(), pendingTasks())
	require.Len(t, got, 4)
	assert.Equal(t, int64(2), got[0].TaskID)
}
