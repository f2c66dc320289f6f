package api

import (
	"synaptech/internal/auth"
	"synaptech/internal/config"
	"synaptech/internal/repository"
	"synaptech/internal/routine"
	"synaptech/internal/speech"
	"synaptech/internal/task"
	"synaptech/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handler bundles the collaborators the HTTP layer orchestrates. All
// engines are injected so tests can substitute deterministic fakes.
type Handler struct {
	cfg         *config.Config
	repo        repository.Repository
	extractor   *task.Engine
	suggester   *routine.Engine
	transcriber *speech.Transcriber
}

func NewHandler(cfg *config.Config, repo repository.Repository, extractor *task.Engine,
	suggester *routine.Engine, transcriber *speech.Transcriber) *Handler {
	return &Handler{
		cfg:         cfg,
		repo:        repo,
		extractor:   extractor,
		suggester:   suggester,
		transcriber: transcriber,
	}
}

// RegisterRoutes wires all endpoints into the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.healthCheck)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.GET("/me", auth.Middleware([]byte(h.cfg.JWTSecret)), h.me)
	}

	protected := r.Group("/api", auth.Middleware([]byte(h.cfg.JWTSecret)))
	{
		protected.POST("/tasks", h.createTask)
		protected.GET("/tasks", h.listTasks)
		protected.PUT("/tasks/:id", h.updateTaskStatus)

		protected.GET("/medications", h.listMedications)
		protected.POST("/medications", h.createMedication)
		protected.GET("/medications/:id", h.getMedication)
		protected.PUT("/medications/:id", h.updateMedication)
		protected.DELETE("/medications/:id", h.deleteMedication)

		protected.GET("/routines", h.getRoutines)
		protected.POST("/routines/followed", h.routineFollowed)

		protected.GET("/reports/productivity", h.productivityReport)

		protected.POST("/sync/device", h.syncDevice)
		protected.GET("/sync/device/status", h.syncStatus)
		protected.POST("/sync/reminders/send", h.sendReminder)
		protected.POST("/sync/reminders/acknowledge/:id", h.acknowledgeReminder)
	}
}

// healthCheck returns server health status
func (h *Handler) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "synaptech-backend",
	})
}
