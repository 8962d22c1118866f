// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the typed repository layer over the relational schema.

One Store wraps *sql.DB; each entity gets its own file of CRUD methods
(polls.go, questions.go, answers.go). Multi-statement writes - question
create/update with choices, poll delete, answer-set submission - run in a
single transaction with rollback on any failure.

Uniqueness constraints are the source of truth for conflicts. Driver
errors from the unique indexes are translated into domain errors at this
boundary:

  - ErrDuplicateQuestion: (poll_id, text) on question
  - ErrDuplicateChoice: (question_id, text) on choice
  - ErrDuplicateVote: the null-normalized (question, voter) index on answer

Not-found conditions surface as ErrPollNotFound / ErrQuestionNotFound so
handlers can map them to 404 without inspecting SQL state.
*/
package store
