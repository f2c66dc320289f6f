package repository

import (
	"context"
	"time"

	"synaptech/internal/model"
	"synaptech/internal/score"
	"synaptech/internal/task"

	"github.com/google/uuid"
)

// Repository is the storage collaborator. It owns identity assignment and
// timestamps; the extraction core never assigns its own task ids.
type Repository interface {
	CreateUser(ctx context.Context, email, passwordHash, fullName string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)

	CreateTask(ctx context.Context, userID int64, extracted task.Extracted) (*model.Task, error)
	UpdateTaskStatus(ctx context.Context, userID, taskID int64, status string) (*model.Task, error)
	ListPendingTasks(ctx context.Context, userID int64, limit int) ([]model.Task, error)

	CreateMedication(ctx context.Context, med *model.Medication) error
	GetMedication(ctx context.Context, userID, medicationID int64) (*model.Medication, error)
	ListMedications(ctx context.Context, userID int64, activeOnly bool) ([]model.Medication, error)
	UpdateMedication(ctx context.Context, med *model.Medication) error
	DeleteMedication(ctx context.Context, userID, medicationID int64) error
	HasMedicationTask(ctx context.Context, userID int64, medicationName string, from, to time.Time) (bool, error)

	ProductivityCounts(ctx context.Context, userID int64) (score.Counts, error)
	RecordRoutineFollowed(ctx context.Context, userID int64) error

	CreateDeviceSync(ctx context.Context, sync *model.DeviceSync) error
	LatestDeviceSync(ctx context.Context, userID int64) (*model.DeviceSync, error)

	CreateReminder(ctx context.Context, userID, taskID int64, reminderType string) (*model.ReminderLog, error)
	AcknowledgeReminder(ctx context.Context, userID, reminderID int64) error
}

// NewSyncID returns the identifier for a new device-sync record.
func NewSyncID() uuid.UUID {
	return uuid.New()
}
