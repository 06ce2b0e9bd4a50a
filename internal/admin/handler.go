package admin

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/quizia/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Authenticate grants dashboard access when the email is on the allowlist
// and the shared password matches. This sits behind regular user auth, so
// it gates the dashboard, not the account.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req models.AdminAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !isAdminEmail(req.Email) || req.Password != adminPassword() {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Accès refusé"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats()
	if err != nil {
		log.Printf("[admin] GetStats error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to compute stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Cleanup()
	if err != nil {
		log.Printf("[admin] Cleanup error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Cleanup failed"})
		return
	}
	log.Printf("[admin] cleanup removed %d duplicate conversations", resp.DeletedCount)
	writeJSON(w, http.StatusOK, resp)
}

func isAdminEmail(email string) bool {
	allowed := os.Getenv("ADMIN_EMAILS")
	if allowed == "" {
		return false
	}
	for _, e := range strings.Split(allowed, ",") {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

func adminPassword() string {
	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		return pw
	}
	return "admin123"
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
