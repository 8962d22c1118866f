// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate holds the pure submission and admin-input checks.

Every function is deterministic and side-effect free: it looks only at the
poll, question, and answer values it is handed, never at storage. Callers
run these checks before opening a transaction, so a validation failure
never writes anything.

  - AnswerShape: per-question-type rules for one answer
  - AnswerChoices: referenced choices belong to the question
  - Submission: answer set covers the poll's questions exactly
  - QuestionChoices: choice-list rules at question create/update
  - PollMutable: published polls are structurally frozen

Failures are sentinel errors; handlers surface them as 400-class responses
with the error text as the reason string.
*/
package validate
