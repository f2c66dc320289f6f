package api

import (
	"context"
	"log"
	"net/http"

	"synaptech/internal/auth"
	"synaptech/internal/utils"

	"github.com/gin-gonic/gin"
)

// getRoutines handles GET /api/routines: suggestions for the caller's
// pending tasks. Suggestion generation never fails; at worst it degrades to
// the deterministic priority ordering.
func (h *Handler) getRoutines(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	tasks, err := h.repo.ListPendingTasks(c.Request.Context(), userID, 20)
	if err != nil {
		log.Printf("[Routines] Failed to list tasks for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to load tasks")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.AITimeout)
	defer cancel()

	suggestions := h.suggester.Suggest(ctx, tasks)

	utils.Success(c, gin.H{
		"message":  "routines generated",
		"routines": suggestions,
	})
}

// routineFollowed records that the user followed a suggested routine; the
// count feeds the productivity score.
func (h *Handler) routineFollowed(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.repo.RecordRoutineFollowed(c.Request.Context(), userID); err != nil {
		log.Printf("[Routines] Failed to record follow for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to record routine")
		return
	}

	utils.Success(c, gin.H{
		"message": "routine recorded",
	})
}
