// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects with the configured engine. Foreign key enforcement is
// switched on for every sqlite connection; Postgres enforces it always.
func Open(databaseType, url string) (*sql.DB, error) {
	switch databaseType {
	case "postgres":
		return sql.Open("postgres", url)
	case "sqlite":
		if !strings.Contains(url, "_pragma=") {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + "_pragma=foreign_keys(1)"
		}
		return sql.Open("sqlite", url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    is_published BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_poll_published ON poll(is_published);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'text' CHECK (type IN ('text', 'single_choice', 'multi_choice')),
    UNIQUE (poll_id, text)
);

CREATE INDEX IF NOT EXISTS idx_question_poll_id ON question(poll_id);

-- Choices
CREATE TABLE IF NOT EXISTS choice (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    text TEXT NOT NULL,
    UNIQUE (question_id, text)
);

CREATE INDEX IF NOT EXISTS idx_choice_question_id ON choice(question_id);

-- Answers
CREATE TABLE IF NOT EXISTS answer (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    text TEXT,
    user_id BIGINT,
    anonymous_id BIGINT
);

-- A plain UNIQUE over nullable identity columns treats NULLs as distinct,
-- so the voter half of the tuple is null-normalized before the engine
-- enforces one answer per (voter, question).
CREATE UNIQUE INDEX IF NOT EXISTS idx_answer_voter_question
    ON answer(question_id, COALESCE(user_id, -1), COALESCE(anonymous_id, -1));

CREATE INDEX IF NOT EXISTS idx_answer_question_id ON answer(question_id);

-- Answer choice links
CREATE TABLE IF NOT EXISTS answer_choice (
    answer_id TEXT NOT NULL REFERENCES answer(id) ON DELETE CASCADE,
    choice_id TEXT NOT NULL REFERENCES choice(id) ON DELETE CASCADE,
    PRIMARY KEY (answer_id, choice_id)
);

CREATE INDEX IF NOT EXISTS idx_answer_choice_choice ON answer_choice(choice_id);
`
