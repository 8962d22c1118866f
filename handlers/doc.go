// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Pollbox API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - AdminPollHandler: poll CRUD (admin)
  - AdminQuestionHandler: question/choice CRUD nested under a poll (admin)
  - ResultsHandler: per-poll answer tallies (admin)
  - UserPollHandler: active-poll listing, detail, voting, answer history

Handlers are created via constructor functions that accept *store.Store
and Config:

	pollHandler := handlers.NewAdminPollHandler(st, cfg)

# Admin Surface

Admin operations require the X-Admin-Token header:

	GET/POST   /polls/admin/
	GET/PUT/DELETE /polls/admin/{id}
	GET/POST   /polls/admin/{poll_id}/questions/
	GET/PUT/DELETE /polls/admin/{poll_id}/questions/{id}
	GET        /polls/admin/{poll_id}/results

Structural writes to a published poll's questions and choices are rejected
with a 400 "poll already published" error. A question's choice list is
replaced wholesale on update.

# Voting Flow

Voters are either authenticated (X-User-ID, resolved upstream) or
anonymous via a self-supplied integer token; exactly one channel must be
present or the request fails with 403 before any business logic.

	GET  /polls/user/              active polls
	GET  /polls/user/{id}          poll detail with questions and choices
	POST /polls/user/{id}          submit one answer per question, atomically
	GET  /polls/user/show_answers  the caller's own answers across polls

A vote must answer exactly the poll's question set; each answer must match
its question's type (text / single_choice / multi_choice). The whole set
commits in one transaction, and a voter who already answered gets 409 with
nothing written.
*/
package handlers
