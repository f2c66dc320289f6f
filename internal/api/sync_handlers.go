package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"synaptech/internal/auth"
	"synaptech/internal/model"
	"synaptech/internal/repository"
	"synaptech/internal/utils"

	"github.com/gin-gonic/gin"
)

// SyncDeviceRequest is the wearable synchronization payload.
type SyncDeviceRequest struct {
	DeviceID string                 `json:"device_id" binding:"required"`
	SyncType string                 `json:"sync_type"`
	Data     map[string]interface{} `json:"data"`
}

func (h *Handler) syncDevice(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SyncDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "device_id is required")
		return
	}
	if req.SyncType == "" {
		req.SyncType = "ble"
	}

	sync := &model.DeviceSync{
		ID:       repository.NewSyncID(),
		UserID:   userID,
		DeviceID: req.DeviceID,
		SyncType: req.SyncType,
		Payload:  req.Data,
		Status:   "synced",
		SyncedAt: time.Now(),
	}

	if err := h.repo.CreateDeviceSync(c.Request.Context(), sync); err != nil {
		log.Printf("[Sync] Failed to record sync for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to record sync")
		return
	}

	utils.Success(c, gin.H{
		"message": "sync recorded",
		"sync":    sync,
	})
}

func (h *Handler) syncStatus(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	latest, err := h.repo.LatestDeviceSync(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Success(c, gin.H{
				"status":    "never_synced",
				"last_sync": nil,
			})
			return
		}
		log.Printf("[Sync] Failed to read sync status for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to read sync status")
		return
	}

	utils.Success(c, gin.H{
		"status":    "synced",
		"last_sync": latest,
	})
}

// SendReminderRequest asks for a haptic reminder on the device.
type SendReminderRequest struct {
	TaskID       int64  `json:"task_id" binding:"required"`
	ReminderType string `json:"reminder_type"`
}

func (h *Handler) sendReminder(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SendReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "task_id is required")
		return
	}
	if req.ReminderType == "" {
		req.ReminderType = "haptic"
	}

	reminder, err := h.repo.CreateReminder(c.Request.Context(), userID, req.TaskID, req.ReminderType)
	if err != nil {
		log.Printf("[Sync] Failed to create reminder for user %d task %d: %v", userID, req.TaskID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to send reminder")
		return
	}

	// The BLE push to the wearable happens out of band; this records intent.
	utils.Success(c, gin.H{
		"message":  "reminder sent",
		"reminder": reminder,
	})
}

func (h *Handler) acknowledgeReminder(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	reminderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid reminder id")
		return
	}

	if err := h.repo.AcknowledgeReminder(c.Request.Context(), userID, reminderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, http.StatusNotFound, "reminder not found")
			return
		}
		log.Printf("[Sync] Failed to acknowledge reminder %d for user %d: %v", reminderID, userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to acknowledge reminder")
		return
	}

	utils.Success(c, gin.H{
		"message": "reminder acknowledged",
	})
}
