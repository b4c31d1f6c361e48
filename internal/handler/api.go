package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cryptor-go/internal/auth"
	"github.com/cryptor-go/internal/config"
	"github.com/cryptor-go/internal/dao"
	"github.com/cryptor-go/internal/errors"
)

// APIHandler handles authentication and account routes
type APIHandler struct {
	cfg     *config.Config
	jwtAuth *auth.JWTAuth
	userDAO *dao.UserDAO
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(cfg *config.Config, userDAO *dao.UserDAO) *APIHandler {
	expireHours := cfg.JWTExpire
	if expireHours <= 0 {
		expireHours = 48
	}
	return &APIHandler{
		cfg:     cfg,
		jwtAuth: auth.NewJWTAuth(cfg.JWTSecret, time.Duration(expireHours)*time.Hour),
		userDAO: userDAO,
	}
}

// Login handles user authentication and issues a JWT
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, errors.NewBadRequestWithCause("invalid request body", err))
		return
	}

	if err := h.userDAO.Validate(req.Username, req.Password); err != nil {
		RespondError(w, errors.NewUnauthorized("invalid username or password"))
		return
	}

	token, err := h.jwtAuth.GenerateToken(req.Username)
	if err != nil {
		RespondError(w, errors.NewInternalWithCause("token generation failed", err))
		return
	}

	RespondSuccess(w, map[string]interface{}{
		"username": req.Username,
		"token":    token,
	})
}

// GetUserInfo returns the authenticated user's profile
func (h *APIHandler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	username := auth.UserFromContext(r.Context())
	if username == "" {
		RespondError(w, errors.NewUnauthorized("not authenticated"))
		return
	}
	RespondSuccess(w, map[string]interface{}{
		"username": username,
		"version":  config.Version,
	})
}

// UpdatePasswd updates the authenticated user's password
func (h *APIHandler) UpdatePasswd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Password    string `json:"password"`
		NewPassword string `json:"new_password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, errors.NewBadRequestWithCause("invalid request body", err))
		return
	}

	if len(req.NewPassword) < 8 {
		RespondError(w, errors.NewBadRequest("password too short, at least 8 characters"))
		return
	}

	if err := h.userDAO.Validate(req.Username, req.Password); err != nil {
		RespondError(w, errors.NewUnauthorized("invalid username or password"))
		return
	}

	if err := h.userDAO.UpdatePassword(req.Username, req.NewPassword); err != nil {
		RespondError(w, errors.NewInternalWithCause("password update failed", err))
		return
	}

	RespondSuccessMsg(w, "update success")
}
