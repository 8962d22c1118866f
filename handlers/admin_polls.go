// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/pollbox/pollbox/auth"
	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/models"
	"github.com/pollbox/pollbox/store"
)

type AdminPollHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewAdminPollHandler(st *store.Store, cfg cliparse.Config) *AdminPollHandler {
	return &AdminPollHandler{store: st, cfg: cfg}
}

// requireAdmin gates admin endpoints on the X-Admin-Token header.
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) bool {
	if err := auth.ValidateAdminToken(r.Header.Get("X-Admin-Token"), cfg.AdminToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return false
	}
	return true
}

// List handles GET /polls/admin/
func (h *AdminPollHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	polls, err := h.store.ListPolls()
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// Create handles POST /polls/admin/
func (h *AdminPollHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.EndDate.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_date is required")
		return
	}

	pollID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate poll ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	poll := models.Poll{
		ID:          pollID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   time.Now().UTC(),
		EndDate:     req.EndDate.UTC(),
		IsPublished: req.IsPublished,
	}

	if err := h.store.CreatePoll(poll); err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// Get handles GET /polls/admin/{id}
func (h *AdminPollHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	poll, err := h.store.GetPoll(r.PathValue("id"))
	if errors.Is(err, store.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// Update handles PUT /polls/admin/{id}. start_date is immutable and any
// submitted value for it is ignored.
func (h *AdminPollHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.EndDate.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_date is required")
		return
	}

	poll, err := h.store.GetPoll(r.PathValue("id"))
	if errors.Is(err, store.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	poll.Name = req.Name
	poll.Description = req.Description
	poll.EndDate = req.EndDate.UTC()
	poll.IsPublished = req.IsPublished

	if err := h.store.UpdatePoll(poll); err != nil {
		slog.Error("failed to update poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	slog.Info("poll updated", "poll_id", poll.ID, "is_published", poll.IsPublished)

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// Delete handles DELETE /polls/admin/{id}
func (h *AdminPollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	pollID := r.PathValue("id")
	err := h.store.DeletePoll(pollID)
	if errors.Is(err, store.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	w.WriteHeader(http.StatusNoContent)
}
