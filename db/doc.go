// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database connection and creates the schema.

# Tables

  - poll: surveyed unit with the publication flag and time window
  - question: one prompt per row, unique text within its poll
  - choice: selectable option, unique text within its question
  - answer: one voter's response to one question
  - answer_choice: join table linking answers to selected choices

# Constraints

All uniqueness and referential integrity lives in the engine:

  - UNIQUE (poll_id, text) on question
  - UNIQUE (question_id, text) on choice
  - a unique index on answer over (question_id, user_id, anonymous_id)
    with NULL identity halves normalized via COALESCE, so concurrent
    duplicate votes collapse into one success and one constraint error
  - ON DELETE CASCADE down the poll → question → choice/answer chain

Both backends share one DDL string: Postgres (lib/pq) for deployments,
sqlite (modernc.org/sqlite) for development and tests.
*/
package db
