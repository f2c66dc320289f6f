package api

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"synaptech/internal/auth"
	"synaptech/internal/medication"
	"synaptech/internal/model"
	"synaptech/internal/utils"

	"github.com/gin-gonic/gin"
)

// CreateMedicationRequest is the new-medication payload. Schedules are
// "HH:MM" strings; at least one is required.
type CreateMedicationRequest struct {
	Name      string   `json:"name" binding:"required"`
	Dosage    string   `json:"dosage"`
	Frequency string   `json:"frequency"`
	Schedules []string `json:"schedules" binding:"required"`
	Notes     string   `json:"notes"`
}

// UpdateMedicationRequest is the partial-update payload; only supplied
// fields are changed.
type UpdateMedicationRequest struct {
	Name      *string  `json:"name"`
	Dosage    *string  `json:"dosage"`
	Frequency *string  `json:"frequency"`
	Schedules []string `json:"schedules"`
	Notes     *string  `json:"notes"`
	IsActive  *bool    `json:"is_active"`
}

func (h *Handler) listMedications(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	activeOnly := strings.ToLower(c.DefaultQuery("active_only", "true")) == "true"

	meds, err := h.repo.ListMedications(c.Request.Context(), userID, activeOnly)
	if err != nil {
		log.Printf("[Medications] Failed to list medications for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to list medications")
		return
	}

	if meds == nil {
		meds = []model.Medication{}
	}
	utils.Success(c, gin.H{
		"medications": meds,
		"total":       len(meds),
	})
}

func (h *Handler) createMedication(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "name and schedules are required")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.Error(c, http.StatusBadRequest, "name is required")
		return
	}
	if err := medication.ValidateSchedules(req.Schedules); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	med := &model.Medication{
		UserID:    userID,
		Name:      req.Name,
		Dosage:    strings.TrimSpace(req.Dosage),
		Frequency: strings.TrimSpace(req.Frequency),
		Schedules: req.Schedules,
		Notes:     strings.TrimSpace(req.Notes),
		IsActive:  true,
	}
	if err := h.repo.CreateMedication(c.Request.Context(), med); err != nil {
		log.Printf("[Medications] Failed to create medication for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to create medication")
		return
	}

	h.generateMedicationTasks(c.Request.Context(), med)

	utils.Created(c, gin.H{
		"message":    "medication created",
		"medication": med,
	})
}

func (h *Handler) getMedication(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	medID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid medication id")
		return
	}

	med, err := h.repo.GetMedication(c.Request.Context(), userID, medID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, http.StatusNotFound, "medication not found")
			return
		}
		log.Printf("[Medications] Failed to load medication %d for user %d: %v", medID, userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to load medication")
		return
	}

	utils.Success(c, gin.H{"medication": med})
}

func (h *Handler) updateMedication(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	medID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid medication id")
		return
	}

	var req UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	med, err := h.repo.GetMedication(c.Request.Context(), userID, medID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, http.StatusNotFound, "medication not found")
			return
		}
		log.Printf("[Medications] Failed to load medication %d for user %d: %v", medID, userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to load medication")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			utils.Error(c, http.StatusBadRequest, "name cannot be empty")
			return
		}
		med.Name = name
	}
	if req.Dosage != nil {
		med.Dosage = strings.TrimSpace(*req.Dosage)
	}
	if req.Frequency != nil {
		med.Frequency = strings.TrimSpace(*req.Frequency)
	}
	schedulesChanged := false
	if req.Schedules != nil {
		if err := medication.ValidateSchedules(req.Schedules); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		med.Schedules = req.Schedules
		schedulesChanged = true
	}
	if req.Notes != nil {
		med.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.IsActive != nil {
		med.IsActive = *req.IsActive
	}

	if err := h.repo.UpdateMedication(c.Request.Context(), med); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, http.StatusNotFound, "medication not found")
			return
		}
		log.Printf("[Medications] Failed to update medication %d for user %d: %v", medID, userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to update medication")
		return
	}

	if schedulesChanged && med.IsActive {
		h.generateMedicationTasks(c.Request.Context(), med)
	}

	utils.Success(c, gin.H{
		"message":    "medication updated",
		"medication": med,
	})
}

func (h *Handler) deleteMedication(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	medID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid medication id")
		return
	}

	if err := h.repo.DeleteMedication(c.Request.Context(), userID, medID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, http.StatusNotFound, "medication not found")
			return
		}
		log.Printf("[Medications] Failed to delete medication %d for user %d: %v", medID, userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to delete medication")
		return
	}

	utils.Success(c, gin.H{"message": "medication deleted"})
}

// generateMedicationTasks creates today's intake reminder tasks for the
// medication, skipping when any reminder for it already exists today.
// Failures here are logged, never fatal for the medication request itself.
func (h *Handler) generateMedicationTasks(ctx context.Context, med *model.Medication) {
	now := time.Now().In(h.cfg.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	exists, err := h.repo.HasMedicationTask(ctx, med.UserID, med.Name, dayStart, dayEnd)
	if err != nil {
		log.Printf("[Medications] Failed to check existing tasks for medication %d: %v", med.ID, err)
		return
	}
	if exists {
		return
	}

	for _, extracted := range medication.TasksFor(med, now) {
		if _, err := h.repo.CreateTask(ctx, med.UserID, extracted); err != nil {
			log.Printf("[Medications] Failed to create intake task for medication %d: %v", med.ID, err)
		}
	}
}
