package handlers

import (
	"errors"
	"net/http"

	"github.com/bouvin87/BarcodeBuddy/internal/middleware"
	"github.com/bouvin87/BarcodeBuddy/internal/models"
	"github.com/bouvin87/BarcodeBuddy/internal/services"
	"github.com/bouvin87/BarcodeBuddy/pkg/utils"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

// Login exchanges the shared credentials for a session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.Service.Login(r.Context(), &req)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, "Invalid username or password")
		return
	case errors.Is(err, services.ErrLoginNotConfigured):
		utils.Error(w, http.StatusServiceUnavailable, "Login is not configured on the server")
		return
	case err != nil:
		writeServiceError(w, "Login", err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	if err := h.Service.Logout(r.Context(), sessionID); err != nil {
		writeServiceError(w, "Logout", err)
		return
	}

	utils.JSON(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionIDFromContext(r.Context())

	status, err := h.Service.Status(r.Context(), sessionID)
	if err != nil {
		utils.JSON(w, http.StatusUnauthorized, models.AuthStatusResponse{Authenticated: false})
		return
	}

	utils.JSON(w, http.StatusOK, status)
}
