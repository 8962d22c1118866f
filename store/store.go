// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	ErrPollNotFound      = errors.New("poll not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrDuplicateQuestion = errors.New("this question exists in the poll")
	ErrDuplicateChoice   = errors.New("this choice exists for the question")
	ErrDuplicateVote     = errors.New("voter already answered this question")
	ErrBothIdentities    = errors.New("cant use user auth and anonymous token both")
)

// Store is the typed repository over the relational schema. All
// multi-statement writes run inside a single transaction.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation reports whether err is a uniqueness-constraint error
// from either supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
