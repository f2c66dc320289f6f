package model

import "time"

// Medication is a treatment with scheduled intake times. Schedules are
// "HH:MM" strings; active medications generate daily reminder tasks.
type Medication struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`    // e.g. "10mg", "1 tableta"
	Frequency string    `json:"frequency"` // e.g. "Cada 8 horas"
	Schedules []string  `json:"schedules"`
	Notes     string    `json:"notes"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
