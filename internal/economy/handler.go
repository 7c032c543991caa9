package economy

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/apperr"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// GetTolerance reports the caller's absence standing without charging.
func (h *Handler) GetTolerance(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.ToleranceStatus(userID)
	if err != nil {
		writeError(w, err, "Failed to get tolerance status")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	query := r.URL.Query()
	limit := intQueryParam(query, "limit", 50)
	offset := intQueryParam(query, "offset", 0)

	resp, err := h.service.Ledger(userID, limit, offset)
	if err != nil {
		writeError(w, err, "Failed to get ledger")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Helpers ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case apperr.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case apperr.IsConflict(err):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case apperr.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case apperr.IsQuota(err):
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Generation capacity exhausted, try again later"})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: fallback})
	}
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
