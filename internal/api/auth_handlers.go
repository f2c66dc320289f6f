package api

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"synaptech/internal/auth"
	"synaptech/internal/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

// LoginRequest is the session creation payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("[Auth] Failed to hash password: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	user, err := h.repo.CreateUser(c.Request.Context(), req.Email, hash, req.FullName)
	if err != nil {
		log.Printf("[Auth] Failed to create user %s: %v", req.Email, err)
		utils.Error(c, http.StatusBadRequest, "email already registered")
		return
	}

	token, err := auth.GenerateToken([]byte(h.cfg.JWTSecret), user.ID)
	if err != nil {
		log.Printf("[Auth] Failed to generate token: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.Created(c, gin.H{
		"user_id": user.ID,
		"token":   token,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.repo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken([]byte(h.cfg.JWTSecret), user.ID)
	if err != nil {
		log.Printf("[Auth] Failed to generate token: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.Success(c, gin.H{
		"user_id": user.ID,
		"token":   token,
	})
}

func (h *Handler) me(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.repo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Error(c, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("[Auth] Failed to load user %d: %v", userID, err)
		utils.Error(c, http.StatusInternalServerError, "failed to load user")
		return
	}

	utils.Success(c, gin.H{
		"user_id":   user.ID,
		"email":     user.Email,
		"full_name": user.FullName,
	})
}
