package model

import (
	"time"

	"github.com/google/uuid"
)

// DeviceSync records one synchronization with the wearable device.
type DeviceSync struct {
	ID       uuid.UUID              `json:"id"`
	UserID   int64                  `json:"user_id"`
	DeviceID string                 `json:"device_id"`
	SyncType string                 `json:"sync_type"` // ble, wifi
	Payload  map[string]interface{} `json:"data,omitempty"`
	Status   string                 `json:"status"`
	SyncedAt time.Time              `json:"synced_at"`
}

// ReminderLog records a reminder pushed to the device for a task.
// Acknowledged reminders count toward the productivity score.
type ReminderLog struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	TaskID         int64      `json:"task_id"`
	ReminderType   string     `json:"reminder_type"` // haptic, notification
	SentAt         time.Time  `json:"sent_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}
