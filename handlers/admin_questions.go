// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pollbox/pollbox/auth"
	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/models"
	"github.com/pollbox/pollbox/store"
	"github.com/pollbox/pollbox/validate"
)

type AdminQuestionHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAdminQuestionHandler(st *store.Store, cfg cliparse.Config) *AdminQuestionHandler {
	return &AdminQuestionHandler{store: st, cfg: cfg}
}

// parentPoll loads the poll the question routes are nested under,
// writing 404 when it does not exist.
func (h *AdminQuestionHandler) parentPoll(w http.ResponseWriter, r *http.Request) (models.Poll, bool) {
	poll, err := h.store.GetPoll(r.PathValue("poll_id"))
	if errors.Is(err, store.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return models.Poll{}, false
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Poll{}, false
	}
	return poll, true
}

// List handles GET /polls/admin/{poll_id}/questions/
func (h *AdminQuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}
	poll, ok := h.parentPoll(w, r)
	if !ok {
		return
	}

	questions, err := h.store.ListQuestions(poll.ID)
	if err != nil {
		slog.Error("failed to list questions", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// Get handles GET /polls/admin/{poll_id}/questions/{id}
func (h *AdminQuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}
	poll, ok := h.parentPoll(w, r)
	if !ok {
		return
	}

	question, err := h.store.GetQuestion(poll.ID, r.PathValue("id"))
	if errors.Is(err, store.ErrQuestionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, question)
}

// Create handles POST /polls/admin/{poll_id}/questions/
func (h *AdminQuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}
	poll, ok := h.parentPoll(w, r)
	if !ok {
		return
	}

	var req models.QuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !h.validQuestionInput(w, poll, &req) {
		return
	}

	questionID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate question ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	question, err := h.store.CreateQuestion(models.Question{
		ID:     questionID,
		PollID: poll.ID,
		Text:   req.Text,
		Type:   req.Type,
	}, req.Choices)
	if errors.Is(err, store.ErrDuplicateQuestion) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "This question exists in the poll")
		return
	}
	if errors.Is(err, store.ErrDuplicateChoice) {
		middleware.ErrorResponse(w, http.StatusBadRequest, validate.ErrDuplicateChoice.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create question", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question created", "poll_id", poll.ID, "question_id", questionID, "type", question.Type)

	middleware.JSONResponse(w, http.StatusCreated, question)
}

// Update handles PUT /polls/admin/{poll_id}/questions/{id}. The choice
// list is replaced wholesale, not merged.
func (h *AdminQuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}
	poll, ok := h.parentPoll(w, r)
	if !ok {
		return
	}

	var req models.QuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !h.validQuestionInput(w, poll, &req) {
		return
	}

	question, err := h.store.UpdateQuestion(models.Question{
		ID:     r.PathValue("id"),
		PollID: poll.ID,
		Text:   req.Text,
		Type:   req.Type,
	}, req.Choices)
	if errors.Is(err, store.ErrQuestionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if errors.Is(err, store.ErrDuplicateQuestion) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "This question exists in the poll")
		return
	}
	if errors.Is(err, store.ErrDuplicateChoice) {
		middleware.ErrorResponse(w, http.StatusBadRequest, validate.ErrDuplicateChoice.Error())
		return
	}
	if err != nil {
		slog.Error("failed to update question", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update question")
		return
	}

	slog.Info("question updated", "poll_id", poll.ID, "question_id", question.ID)

	middleware.JSONResponse(w, http.StatusOK, question)
}

// Delete handles DELETE /polls/admin/{poll_id}/questions/{id}
func (h *AdminQuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}
	poll, ok := h.parentPoll(w, r)
	if !ok {
		return
	}

	if err := validate.PollMutable(poll); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	questionID := r.PathValue("id")
	err := h.store.DeleteQuestion(poll.ID, questionID)
	if errors.Is(err, store.ErrQuestionNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete question", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}

	slog.Info("question deleted", "poll_id", poll.ID, "question_id", questionID)

	w.WriteHeader(http.StatusNoContent)
}

// validQuestionInput applies the structural checks shared by Create and
// Update: mutable parent poll, known type, non-empty text, valid choices.
func (h *AdminQuestionHandler) validQuestionInput(w http.ResponseWriter, poll models.Poll, req *models.QuestionRequest) bool {
	if err := validate.PollMutable(poll); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}

	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return false
	}
	if req.Type == "" {
		req.Type = models.TypeText
	}
	if !models.ValidQuestionType(req.Type) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid question type")
		return false
	}

	if err := validate.QuestionChoices(req.Type, req.Choices); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
