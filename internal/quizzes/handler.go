package quizzes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quizhive/backend/internal/apperr"
	"github.com/quizhive/backend/internal/models"
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

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListQuizzes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list quizzes"})
		return
	}
	writeJSON(w, http.StatusOK, models.QuizListResponse{Quizzes: quizzes})
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz ID"})
		return
	}

	quiz, err := h.service.GetQuiz(quizID)
	if err != nil {
		writeJSON(w, apperr.StatusOf(err), models.ErrorResponse{Error: errorMessage(err, "Failed to get quiz")})
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	quizID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid quiz ID"})
		return
	}

	var req models.SubmitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitAttempt(r.Context(), userID, quizID, req)
	if err != nil {
		// A failed submission never partially persists; the user can
		// safely resubmit.
		writeJSON(w, apperr.StatusOf(err), models.ErrorResponse{Error: errorMessage(err, "Could not record attempt")})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) AttemptHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, _ = strconv.Atoi(s)
	}

	attempts, err := h.service.GetAttemptHistory(userID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get attempts"})
		return
	}

	writeJSON(w, http.StatusOK, models.AttemptHistoryResponse{Attempts: attempts})
}

// errorMessage surfaces client-fault messages and hides internal ones.
func errorMessage(err error, fallback string) string {
	if apperr.IsValidation(err) || apperr.IsNotFound(err) {
		return err.Error()
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
