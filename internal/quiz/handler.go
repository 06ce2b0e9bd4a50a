package quiz

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/quizia/backend/internal/auth"
	"github.com/quizia/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.GenerateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Subject == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subject is required"})
		return
	}
	if req.Level < 1 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "level must be at least 1"})
		return
	}

	resp, err := h.service.StartQuiz(r.Context(), userID, req)
	if err != nil {
		log.Printf("[quiz] GenerateQuiz error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Generation failed"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	query := r.URL.Query()
	subject := query.Get("subject")

	var level *int
	if l := query.Get("level"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid level"})
			return
		}
		level = &v
	}

	session, err := h.service.GetSession(userID, subject, level)
	if err != nil {
		log.Printf("[quiz] GetSession error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get session"})
		return
	}

	writeJSON(w, http.StatusOK, models.SessionResponse{Session: session})
}

func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SaveSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Subject == "" || req.Level == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subject and level are required"})
		return
	}
	if len(req.Questions) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "questions are required"})
		return
	}

	session, err := h.service.SaveProgress(userID, req)
	if err != nil {
		log.Printf("[quiz] SaveSession error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save session"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "session": session})
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	query := r.URL.Query()
	subject := query.Get("subject")
	levelStr := query.Get("level")

	if subject == "" || levelStr == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subject and level are required"})
		return
	}

	level, err := strconv.Atoi(levelStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid level"})
		return
	}

	if err := h.service.DeleteSession(userID, subject, level); err != nil {
		log.Printf("[quiz] DeleteSession error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete session"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) AnalyzeQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.AnalyzeQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Subject == "" || req.Level == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "subject and level are required"})
		return
	}
	if len(req.Questions) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "questions are required"})
		return
	}
	if len(req.Answers) != len(req.Questions) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "answers must match questions"})
		return
	}

	resp, err := h.service.Analyze(r.Context(), userID, req)
	if err != nil {
		log.Printf("[quiz] AnalyzeQuiz error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Analysis failed"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
