package api

import (
	"log"
	"net/http"

	"synaptech/internal/auth"
	"synaptech/internal/score"
	"synaptech/internal/utils"

	"github.com/gin-gonic/gin"
)

// productivityReport handles GET /api/reports/productivity. The stored
// counts are authoritative; the score is recomputed on every request.
func (h *Handler) productivityReport(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	counts, err := h.repo.ProductivityCounts(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[Reports] Failed to read counts for user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to compute report")
		return
	}

	result := score.Calculate(counts)

	utils.Success(c, gin.H{
		"metrics":            counts,
		"productivity_score": result,
	})
}
