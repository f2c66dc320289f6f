package routine

import (
	"encoding/json"
	"fmt"
	"time"

	"synaptech/internal/model"
)

// taskSummary is the task shape sent to the model.
type taskSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date,omitempty"`
	Status   string `json:"status"`
}

// BuildSuggestionPrompt builds the instruction prompt for ranking pending
// tasks into routine suggestions. The response must be a JSON array of
// {id_tarea, cuerpo} objects.
func BuildSuggestionPrompt(tasks []model.Task) string {
	summaries := make([]taskSummary, 0, len(tasks))
	for _, t := range tasks {
		s := taskSummary{
			ID:       t.ID,
			Title:    t.Title,
			Body:     t.Body,
			Priority: string(t.Priority),
			Status:   t.Status,
		}
		if t.DueDate != nil {
			s.DueDate = t.DueDate.Format(time.RFC3339)
		}
		summaries = append(summaries, s)
	}

	tasksJSON, _ := json.MarshalIndent(summaries, "", "  ")

	return fmt.Sprintf(`Eres un asistente personal especializado en ayudar a personas con ADHD a organizar su día.
Tienes acceso a las siguientes tareas pendientes del usuario:

%s

Tu objetivo:
1. Selecciona las 3-5 tareas más importantes para hoy/mañana
2. Para cada tarea, crea una sugerencia de rutina que incluya:
   - Momento óptimo del día para hacerla
   - Estimación de tiempo necesario
   - Consejos para completarla (especialmente útiles para ADHD)
   - Pasos concretos si la tarea es compleja

Considera:
- Tareas urgentes primero
- Agrupar tareas similares
- Alternar tareas difíciles con más sencillas
- Incluir breaks

Responde ÚNICAMENTE con un JSON válido en este formato exacto:
[
    {
        "id_tarea": 123,
        "cuerpo": "Mañana (8:00-9:00) - 30min estimados\n Pasos: ...\n Consejo: ..."
    }
]

NO añadas texto adicional, SOLO el JSON array.`, tasksJSON)
}
