package medication

import (
	"fmt"
	"strings"
	"time"

	"synaptech/internal/model"
	"synaptech/internal/task"
)

const scheduleLayout = "15:04"

// ValidateSchedules checks that every schedule is a well-formed "HH:MM"
// time and that at least one is present.
func ValidateSchedules(schedules []string) error {
	if len(schedules) == 0 {
		return fmt.Errorf("at least one schedule is required")
	}
	for _, s := range schedules {
		if _, err := time.Parse(scheduleLayout, s); err != nil {
			return fmt.Errorf("invalid schedule format %q, expected HH:MM", s)
		}
	}
	return nil
}

// TasksFor builds one intake reminder task per schedule, due on the given
// day at the scheduled time. Medication reminders are always high priority.
func TasksFor(med *model.Medication, day time.Time) []task.Extracted {
	out := make([]task.Extracted, 0, len(med.Schedules))
	for _, s := range med.Schedules {
		t, err := time.Parse(scheduleLayout, s)
		if err != nil {
			continue
		}
		due := time.Date(day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), 0, 0, day.Location())

		out = append(out, task.Extracted{
			Title:    "Tomar medicamento: " + med.Name,
			Priority: model.PriorityHigh,
			DueDate:  due,
			Body:     intakeBody(med),
		})
	}
	return out
}

func intakeBody(med *model.Medication) string {
	dosage := med.Dosage
	if dosage == "" {
		dosage = "Ver instrucciones"
	}
	return strings.TrimSpace("Dosis: " + dosage + "\n" + med.Notes)
}
