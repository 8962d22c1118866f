// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/handlers"
	"github.com/pollbox/pollbox/middleware"
	"github.com/pollbox/pollbox/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	adminPolls := handlers.NewAdminPollHandler(st, cfg)
	adminQuestions := handlers.NewAdminQuestionHandler(st, cfg)
	results := handlers.NewResultsHandler(st, cfg)
	userPolls := handlers.NewUserPollHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management (admin)
	mux.HandleFunc("GET /polls/admin/{$}", middleware.WithLogging(adminPolls.List))
	mux.HandleFunc("POST /polls/admin/{$}", middleware.WithLogging(adminPolls.Create))
	mux.HandleFunc("GET /polls/admin/{id}", middleware.WithLogging(adminPolls.Get))
	mux.HandleFunc("PUT /polls/admin/{id}", middleware.WithLogging(adminPolls.Update))
	mux.HandleFunc("DELETE /polls/admin/{id}", middleware.WithLogging(adminPolls.Delete))
	mux.HandleFunc("GET /polls/admin/{poll_id}/results", middleware.WithLogging(results.PollResults))

	// Question management nested under a poll (admin)
	mux.HandleFunc("GET /polls/admin/{poll_id}/questions/{$}", middleware.WithLogging(adminQuestions.List))
	mux.HandleFunc("POST /polls/admin/{poll_id}/questions/{$}", middleware.WithLogging(adminQuestions.Create))
	mux.HandleFunc("GET /polls/admin/{poll_id}/questions/{id}", middleware.WithLogging(adminQuestions.Get))
	mux.HandleFunc("PUT /polls/admin/{poll_id}/questions/{id}", middleware.WithLogging(adminQuestions.Update))
	mux.HandleFunc("DELETE /polls/admin/{poll_id}/questions/{id}", middleware.WithLogging(adminQuestions.Delete))

	// User surface (public / identity-gated)
	mux.HandleFunc("GET /polls/user/{$}", middleware.WithLogging(userPolls.ListActive))
	mux.HandleFunc("GET /polls/user/show_answers", middleware.WithLogging(userPolls.ShowAnswers))
	mux.HandleFunc("GET /polls/user/{id}", middleware.WithLogging(userPolls.GetDetail))
	mux.HandleFunc("POST /polls/user/{id}", middleware.WithLogging(userPolls.Vote))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollbox API v1"))
	})

	return mux
}
