package api

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"synaptech/internal/auth"
	"synaptech/internal/speech"
	"synaptech/internal/task"
	"synaptech/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxAudioBytes = 25 * 1024 * 1024

// CreateTaskRequest is the JSON payload for text-only task creation. Audio
// goes through the multipart form variant instead ("cuerpo", "fecha" and an
// "audio" file part).
type CreateTaskRequest struct {
	Cuerpo string `json:"cuerpo"`
	Fecha  string `json:"fecha"`
}

// createTask handles POST /api/tasks. The response shape
// {title, priority, due_date, id_tarea} is the compatibility contract with
// existing clients and is returned unwrapped.
func (h *Handler) createTask(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	cuerpo, fecha, audioBytes, ok := h.readTaskInput(c)
	if !ok {
		return
	}

	// Audio first: a transcript may be the only content we have.
	audioText := ""
	if len(audioBytes) > 0 {
		text, err := h.transcriber.Transcribe(c.Request.Context(), audioBytes, "")
		if err != nil {
			var tcErr *speech.TranscodeError
			if errors.As(err, &tcErr) {
				log.Printf("[Tasks] Transcode failed for user %d: %v", userID, err)
				utils.Error(c, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("[Tasks] Transcription failed for user %d: %v", userID, err)
			utils.Error(c, http.StatusBadGateway, err.Error())
			return
		}
		audioText = text
	}

	normalized, err := task.Normalize(cuerpo, audioText)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "no content supplied: text or audio is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.AITimeout)
	defer cancel()

	extracted, degraded := h.extractor.Extract(ctx, normalized, fecha)
	if degraded {
		log.Printf("[Tasks] Extraction degraded for user %d, deterministic defaults applied", userID)
	}

	created, err := h.repo.CreateTask(c.Request.Context(), userID, extracted)
	if err != nil {
		log.Printf("[Tasks] Failed to persist task for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"title":    created.Title,
		"priority": created.Priority,
		"due_date": created.DueDate.Format("2006-01-02T15:04:05"),
		"id_tarea": created.ID,
	})
}

// readTaskInput parses either the JSON or the multipart variant of the
// create-task request. On failure it writes the error response itself.
func (h *Handler) readTaskInput(c *gin.Context) (cuerpo, fecha string, audioBytes []byte, ok bool) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid request body")
			return "", "", nil, false
		}
		return req.Cuerpo, req.Fecha, nil, true
	}

	cuerpo = c.PostForm("cuerpo")
	fecha = c.PostForm("fecha")

	file, err := c.FormFile("audio")
	if err != nil {
		// Multipart without audio is fine; the text fields may carry content.
		return cuerpo, fecha, nil, true
	}
	if file.Size > maxAudioBytes {
		utils.Error(c, http.StatusBadRequest, "audio file exceeds 25MB limit")
		return "", "", nil, false
	}

	src, err := file.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to read audio file")
		return "", "", nil, false
	}
	defer src.Close()

	audioBytes, err = io.ReadAll(src)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to read audio file")
		return "", "", nil, false
	}
	return cuerpo, fecha, audioBytes, true
}

// UpdateTaskRequest is the status update payload.
type UpdateTaskRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateTaskStatus(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid task id")
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "status is required")
		return
	}

	updated, err := h.repo.UpdateTaskStatus(c.Request.Context(), userID, taskID, req.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, http.StatusNotFound, "task not found")
			return
		}
		log.Printf("[Tasks] Failed to update task %d for user %d: %v", taskID, userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to update task")
		return
	}

	utils.Success(c, gin.H{
		"message": "task updated",
		"task":    updated,
	})
}

func (h *Handler) listTasks(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	tasks, err := h.repo.ListPendingTasks(c.Request.Context(), userID, limit)
	if err != nil {
		log.Printf("[Tasks] Failed to list tasks for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	items := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		item := gin.H{
			"id":       t.ID,
			"title":    t.Title,
			"body":     t.Body,
			"priority": t.Priority,
			"status":   t.Status,
		}
		if t.DueDate != nil {
			item["due_date"] = t.DueDate.Format(time.RFC3339)
		}
		items = append(items, item)
	}

	utils.Success(c, gin.H{
		"tasks": items,
		"count": len(items),
	})
}
