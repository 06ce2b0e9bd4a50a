package chat

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/quizia/backend/internal/auth"
	"github.com/quizia/backend/internal/models"
)

// streamDelay paces the synthetic word-by-word stream.
const streamDelay = 30 * time.Millisecond

type Handler struct {
	service *Service
	store   *Store
}

func NewHandler(service *Service, store *Store) *Handler {
	return &Handler{service: service, store: store}
}

// TutorChat answers a tutor conversation. The provider call is
// non-streaming; the reply is then replayed word by word over SSE so the
// client still renders progressively.
func (h *Handler) TutorChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.TutorChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "messages are required"})
		return
	}

	reply, err := h.service.TutorReply(r.Context(), userID, req)
	if err != nil {
		log.Printf("[chat] TutorChat error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Chat failed"})
		return
	}

	streamWords(w, r, reply, func(word string) string {
		chunk, _ := json.Marshal(map[string]string{"content": word})
		return fmt.Sprintf("data: %s\n\n", chunk)
	})
}

// RecommendChat answers a dashboard recommendation prompt, streamed in the
// `0:"chunk"` line format the dashboard widget expects.
func (h *Handler) RecommendChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.RecommendChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "messages are required"})
		return
	}

	reply, err := h.service.Recommend(r.Context(), userID, req)
	if err != nil {
		log.Printf("[chat] RecommendChat error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Chat failed"})
		return
	}

	streamWords(w, r, reply, func(word string) string {
		quoted, _ := json.Marshal(word)
		return fmt.Sprintf("0:%s\n", quoted)
	})
}

// streamWords replays a complete reply word by word, one frame per word,
// stopping early when the client goes away.
func streamWords(w http.ResponseWriter, r *http.Request, reply string, frame func(word string) string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, _ := w.(http.Flusher)
	words := strings.Split(reply, " ")
	for i, word := range words {
		select {
		case <-r.Context().Done():
			return
		default:
		}
		if i < len(words)-1 {
			word += " "
		}
		fmt.Fprint(w, frame(word))
		if flusher != nil {
			flusher.Flush()
		}
		time.Sleep(streamDelay)
	}
}

func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	conversations, err := h.store.ListConversations(userID)
	if err != nil {
		log.Printf("[chat] ListConversations error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list conversations"})
		return
	}
	if conversations == nil {
		conversations = []models.ChatConversation{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"conversations": conversations})
}

func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.SaveConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Title == "" || len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "title and messages are required"})
		return
	}

	conv, err := h.store.SaveConversation(userID, req)
	if err != nil {
		log.Printf("[chat] CreateConversation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save conversation"})
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

func (h *Handler) UpdateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	id := mux.Vars(r)["id"]

	var req models.SaveConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	updated, err := h.store.UpdateConversation(userID, id, req)
	if err != nil {
		log.Printf("[chat] UpdateConversation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update conversation"})
		return
	}
	if !updated {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Conversation not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	id := mux.Vars(r)["id"]

	deleted, err := h.store.DeleteConversation(userID, id)
	if err != nil {
		log.Printf("[chat] DeleteConversation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete conversation"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Conversation not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
