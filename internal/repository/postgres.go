package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"synaptech/internal/model"
	"synaptech/internal/score"
	"synaptech/internal/task"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT 'medium',
			status TEXT NOT NULL DEFAULT 'pending',
			due_date TIMESTAMPTZ,
			completed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS routine_follows (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			followed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS medications (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			dosage TEXT NOT NULL DEFAULT '',
			frequency TEXT NOT NULL DEFAULT '',
			schedules JSONB NOT NULL DEFAULT '[]',
			notes TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS device_syncs (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			device_id TEXT NOT NULL,
			sync_type TEXT NOT NULL DEFAULT 'ble',
			data_payload JSONB,
			status TEXT NOT NULL DEFAULT 'synced',
			synced_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS reminder_logs (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			task_id BIGINT NOT NULL REFERENCES tasks(id),
			reminder_type TEXT NOT NULL DEFAULT 'haptic',
			sent_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			acknowledged_at TIMESTAMPTZ
		)`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

func (r *postgresRepository) CreateUser(ctx context.Context, email, passwordHash, fullName string) (*model.User, error) {
	u := &model.User{Email: email, PasswordHash: passwordHash, FullName: fullName}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, email, passwordHash, fullName).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, full_name, created_at
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, full_name, created_at
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *postgresRepository) CreateTask(ctx context.Context, userID int64, extracted task.Extracted) (*model.Task, error) {
	t := &model.Task{
		UserID:   userID,
		Title:    extracted.Title,
		Body:     extracted.Body,
		Priority: extracted.Priority,
		Status:   model.StatusPending,
	}
	due := extracted.DueDate
	t.DueDate = &due

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (user_id, title, body, priority, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, userID, t.Title, t.Body, t.Priority, t.Status, due).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

func (r *postgresRepository) UpdateTaskStatus(ctx context.Context, userID, taskID int64, status string) (*model.Task, error) {
	var completedAt *time.Time
	if status == model.StatusCompleted {
		now := time.Now()
		completedAt = &now
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET status = $1, completed_at = $2, updated_at = now()
		WHERE id = $3 AND user_id = $4
		RETURNING id, user_id, title, body, priority, status, due_date, completed_at, created_at, updated_at
	`, status, completedAt, taskID, userID)

	return scanTask(row)
}

func (r *postgresRepository) ListPendingTasks(ctx context.Context, userID int64, limit int) ([]model.Task, error) {
	if limit < 1 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, title, body, priority, status, due_date, completed_at, created_at, updated_at
		FROM tasks
		WHERE user_id = $1 AND status = $2
		ORDER BY due_date ASC NULLS LAST, id ASC
		LIMIT $3
	`, userID, model.StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *postgresRepository) CreateMedication(ctx context.Context, med *model.Medication) error {
	schedulesJSON, err := json.Marshal(med.Schedules)
	if err != nil {
		return fmt.Errorf("failed to marshal schedules: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO medications (user_id, name, dosage, frequency, schedules, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, med.UserID, med.Name, med.Dosage, med.Frequency, schedulesJSON, med.Notes, med.IsActive).
		Scan(&med.ID, &med.CreatedAt, &med.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetMedication(ctx context.Context, userID, medicationID int64) (*model.Medication, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, dosage, frequency, schedules, notes, is_active, created_at, updated_at
		FROM medications
		WHERE id = $1 AND user_id = $2
	`, medicationID, userID)
	return scanMedication(row)
}

func (r *postgresRepository) ListMedications(ctx context.Context, userID int64, activeOnly bool) ([]model.Medication, error) {
	query := `
		SELECT id, user_id, name, dosage, frequency, schedules, notes, is_active, created_at, updated_at
		FROM medications
		WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	defer rows.Close()

	var meds []model.Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, *m)
	}
	return meds, rows.Err()
}

func (r *postgresRepository) UpdateMedication(ctx context.Context, med *model.Medication) error {
	schedulesJSON, err := json.Marshal(med.Schedules)
	if err != nil {
		return fmt.Errorf("failed to marshal schedules: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		UPDATE medications
		SET name = $1, dosage = $2, frequency = $3, schedules = $4, notes = $5,
		    is_active = $6, updated_at = now()
		WHERE id = $7 AND user_id = $8
		RETURNING updated_at
	`, med.Name, med.Dosage, med.Frequency, schedulesJSON, med.Notes,
		med.IsActive, med.ID, med.UserID).Scan(&med.UpdatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (r *postgresRepository) DeleteMedication(ctx context.Context, userID, medicationID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM medications WHERE id = $1 AND user_id = $2
	`, medicationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *postgresRepository) HasMedicationTask(ctx context.Context, userID int64, medicationName string, from, to time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tasks
			WHERE user_id = $1 AND title LIKE '%' || $2 || '%'
			  AND due_date >= $3 AND due_date < $4
		)
	`, userID, medicationName, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check medication tasks: %w", err)
	}
	return exists, nil
}

func scanMedication(row rowScanner) (*model.Medication, error) {
	m := &model.Medication{}
	var schedulesJSON []byte
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Frequency,
		&schedulesJSON, &m.Notes, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(schedulesJSON) > 0 {
		if err := json.Unmarshal(schedulesJSON, &m.Schedules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal schedules: %w", err)
		}
	}
	return m, nil
}

func (r *postgresRepository) ProductivityCounts(ctx context.Context, userID int64) (score.Counts, error) {
	var c score.Counts
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT count(*) FROM tasks WHERE user_id = $1 AND status = 'completed'),
			(SELECT count(*) FROM tasks WHERE user_id = $1),
			(SELECT count(*) FROM routine_follows WHERE user_id = $1),
			(SELECT count(*) FROM reminder_logs WHERE user_id = $1 AND acknowledged_at IS NOT NULL)
	`, userID).Scan(&c.TasksCompleted, &c.TasksCreated, &c.RoutinesFollowed, &c.RemindersAcknowledged)
	if err != nil {
		return score.Counts{}, fmt.Errorf("failed to read productivity counts: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) RecordRoutineFollowed(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO routine_follows (user_id) VALUES ($1)
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to record routine follow: %w", err)
	}
	return nil
}

func (r *postgresRepository) CreateDeviceSync(ctx context.Context, sync *model.DeviceSync) error {
	payloadJSON, err := json.Marshal(sync.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO device_syncs (id, user_id, device_id, sync_type, data_payload, status, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sync.ID, sync.UserID, sync.DeviceID, sync.SyncType, payloadJSON, sync.Status, sync.SyncedAt)
	if err != nil {
		return fmt.Errorf("failed to create device sync: %w", err)
	}
	return nil
}

func (r *postgresRepository) LatestDeviceSync(ctx context.Context, userID int64) (*model.DeviceSync, error) {
	s := &model.DeviceSync{}
	var payloadJSON []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, device_id, sync_type, data_payload, status, synced_at
		FROM device_syncs
		WHERE user_id = $1
		ORDER BY synced_at DESC
		LIMIT 1
	`, userID).Scan(&s.ID, &s.UserID, &s.DeviceID, &s.SyncType, &payloadJSON, &s.Status, &s.SyncedAt)
	if err != nil {
		return nil, err
	}
	if len(payloadJSON) > 0 {
		if err := json.Unmarshal(payloadJSON, &s.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal sync payload: %w", err)
		}
	}
	return s, nil
}

func (r *postgresRepository) CreateReminder(ctx context.Context, userID, taskID int64, reminderType string) (*model.ReminderLog, error) {
	rem := &model.ReminderLog{UserID: userID, TaskID: taskID, ReminderType: reminderType}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reminder_logs (user_id, task_id, reminder_type)
		VALUES ($1, $2, $3)
		RETURNING id, sent_at
	`, userID, taskID, reminderType).Scan(&rem.ID, &rem.SentAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return rem, nil
}

func (r *postgresRepository) AcknowledgeReminder(ctx context.Context, userID, reminderID int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminder_logs
		SET acknowledged_at = now()
		WHERE id = $1 AND user_id = $2 AND acknowledged_at IS NULL
	`, reminderID, userID)
	if err != nil {
		return fmt.Errorf("failed to acknowledge reminder: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*model.Task, error) {
	t := &model.Task{}
	var due, completed sql.NullTime
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Body, &t.Priority, &t.Status,
		&due, &completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		t.DueDate = &due.Time
	}
	if completed.Valid {
		t.CompletedAt = &completed.Time
	}
	return t, nil
}
