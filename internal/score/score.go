package score

import "math"

// Counts are the stored aggregate counters a score is computed from. They
// are the authoritative state; the score itself is a derived view.
type Counts struct {
	TasksCompleted        int `json:"tasks_completed"`
	TasksCreated          int `json:"tasks_created"`
	RoutinesFollowed      int `json:"routines_followed"`
	RemindersAcknowledged int `json:"reminders_acknowledged"`
}

// Result is a bounded productivity score with its qualitative level.
type Result struct {
	Score          float64 `json:"score"`           // in [0, 100]
	CompletionRate float64 `json:"completion_rate"` // percent
	Level          string  `json:"level"`           // Bajo, Moderado, Bueno, Excelente
}

// Calculate derives the productivity score:
//
//	rate  = completed / created        (0 when nothing was created)
//	score = rate*40 + routines*2 + reminders*1, capped at 100
func Calculate(c Counts) Result {
	rate := 0.0
	if c.TasksCreated > 0 {
		rate = float64(c.TasksCompleted) / float64(c.TasksCreated)
	}

	raw := rate*40 + float64(c.RoutinesFollowed)*2 + float64(c.RemindersAcknowledged)
	raw = math.Min(raw, 100)

	return Result{
		Score:          round2(raw),
		CompletionRate: round2(rate * 100),
		Level:          level(raw),
	}
}

func level(score float64) string {
	switch {
	case score >= 80:
		return "Excelente"
	case score >= 60:
		return "Bueno"
	case score >= 40:
		return "Moderado"
	default:
		return "Bajo"
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
