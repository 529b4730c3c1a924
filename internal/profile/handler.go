package profile

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/crossroads/apparel-backend/internal/httpjson"
	"github.com/crossroads/apparel-backend/internal/models"
)

// Handler holds the signup HTTP handler.
type Handler struct {
	svc *Service
	log logrus.FieldLogger
}

func NewHandler(svc *Service, log logrus.FieldLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Create handles POST /api/profile.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if err := httpjson.Read(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.svc.CreateProfile(r.Context(), req); err != nil {
		status := httpjson.StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.WithError(err).Error("create profile")
		}
		httpjson.Error(w, status, httpjson.Message(err))
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]string{"message": "Profile created successfully!"})
}
