package auth

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/crossroads/apparel-backend/internal/httpjson"
	"github.com/crossroads/apparel-backend/internal/models"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc *Service
	log logrus.FieldLogger
}

func NewHandler(svc *Service, log logrus.FieldLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Login handles POST /api/login and returns the user without its password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httpjson.Read(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		status := httpjson.StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.WithError(err).Error("login")
		}
		httpjson.Error(w, status, httpjson.Message(err))
		return
	}

	httpjson.Write(w, http.StatusOK, user)
}
