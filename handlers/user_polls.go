// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pollbox/pollbox/auth"
	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/models"
	"github.com/pollbox/pollbox/store"
	"github.com/pollbox/pollbox/validate"
)

type UserPollHandler struct {
	store *store.Store
	cfg   cliparse.Config

	// now is swappable so the activity-window checks stay testable.
	now func() time.Time
}

func NewUserPollHandler(st *store.Store, cfg cliparse.Config) *UserPollHandler {
	return &UserPollHandler{store: st, cfg: cfg, now: time.Now}
}

// ListActive handles GET /polls/user/
func (h *UserPollHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	polls, err := h.store.ListActivePolls(h.now())
	if err != nil {
		slog.Error("failed to list active polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetDetail handles GET /polls/user/{id}. Only active polls are visible
// on the user surface; an unpublished or out-of-window poll is a 404 here.
func (h *UserPollHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
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
	if !poll.Active(h.now()) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	questions, err := h.store.ListQuestions(poll.ID)
	if err != nil {
		slog.Error("failed to list questions", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollDetail{Poll: poll, Questions: questions})
}

// Vote handles POST /polls/user/{id}: one voter's full answer set for one
// poll, committed atomically or not at all.
func (h *UserPollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Identity-channel check runs before any business logic.
	voter, err := auth.ResolveVoter(r, req.AnonymousID)
	if errors.Is(err, auth.ErrInvalidAnonymousID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
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
	if !poll.Active(h.now()) {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is not open for voting")
		return
	}

	questions, err := h.store.ListQuestions(poll.ID)
	if err != nil {
		slog.Error("failed to list questions", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := validate.Submission(questions, req.Answers); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answers := make([]models.Answer, 0, len(req.Answers))
	for _, sub := range req.Answers {
		question := byID[sub.QuestionID]
		if err := validate.AnswerShape(question, sub); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := validate.AnswerChoices(question, sub); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}

		choices := make([]models.Choice, 0, len(sub.ChoiceIDs))
		for _, choiceID := range sub.ChoiceIDs {
			for _, c := range question.Choices {
				if c.ID == choiceID {
					choices = append(choices, c)
					break
				}
			}
		}

		answers = append(answers, models.Answer{
			QuestionID: question.ID,
			Text:       sub.Text,
			Choices:    choices,
		})
	}

	persisted, err := h.store.CreateAnswers(voter, answers)
	if errors.Is(err, store.ErrDuplicateVote) {
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted in this poll")
		return
	}
	if err != nil {
		slog.Error("failed to save answers", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save answers")
		return
	}

	slog.Info("vote recorded", "poll_id", poll.ID, "answers", len(persisted), "anonymous", voter.AnonymousID != nil)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		Answers:     persisted,
		AnonymousID: voter.AnonymousID,
	})
}

// ShowAnswers handles GET /polls/user/show_answers: the caller's own
// answer history across active polls, choices resolved to texts.
func (h *UserPollHandler) ShowAnswers(w http.ResponseWriter, r *http.Request) {
	var anonymousID *int64
	if raw := r.URL.Query().Get("anonymous_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "anonymous_id must be an integer")
			return
		}
		anonymousID = &id
	}

	voter, err := auth.ResolveVoter(r, anonymousID)
	if errors.Is(err, auth.ErrInvalidAnonymousID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
		return
	}

	polls, err := h.store.ListActivePolls(h.now())
	if err != nil {
		slog.Error("failed to list active polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	history := []models.PollHistory{}
	for _, poll := range polls {
		questions, err := h.store.ListQuestions(poll.ID)
		if err != nil {
			slog.Error("failed to list questions", "error", err, "poll_id", poll.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		byQuestion, err := h.store.VoterAnswers(poll.ID, voter)
		if err != nil {
			slog.Error("failed to query voter answers", "error", err, "poll_id", poll.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		entry := models.PollHistory{Poll: poll, Questions: []models.QuestionHistory{}}
		for _, q := range questions {
			answers := byQuestion[q.ID]
			if answers == nil {
				answers = []models.Answer{}
			}
			entry.Questions = append(entry.Questions, models.QuestionHistory{
				ID:      q.ID,
				Text:    q.Text,
				Type:    q.Type,
				Answers: answers,
			})
		}
		history = append(history, entry)
	}

	middleware.JSONResponse(w, http.StatusOK, history)
}
