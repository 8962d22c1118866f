// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pollbox/pollbox/models"
)

// CreatePoll inserts a new poll. StartDate is set once here and never
// touched by UpdatePoll.
func (s *Store) CreatePoll(p models.Poll) error {
	_, err := s.db.Exec(`
		INSERT INTO poll (id, name, description, start_date, end_date, is_published)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Name, p.Description, p.StartDate.UTC(), p.EndDate.UTC(), p.IsPublished)
	if err != nil {
		return fmt.Errorf("insert poll: %w", err)
	}
	return nil
}

func (s *Store) GetPoll(id string) (models.Poll, error) {
	var p models.Poll
	err := s.db.QueryRow(`
		SELECT id, name, description, start_date, end_date, is_published
		FROM poll WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.IsPublished)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("query poll: %w", err)
	}
	return p, nil
}

func (s *Store) ListPolls() ([]models.Poll, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, start_date, end_date, is_published
		FROM poll ORDER BY start_date, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}
	defer rows.Close()

	return scanPolls(rows)
}

// ListActivePolls returns published polls whose window strictly contains
// now. The caller supplies the clock so the query stays deterministic.
func (s *Store) ListActivePolls(now time.Time) ([]models.Poll, error) {
	rows, err := s.db.Query(`
		SELECT id, name, description, start_date, end_date, is_published
		FROM poll
		WHERE is_published = TRUE AND start_date < $1 AND end_date > $1
		ORDER BY start_date, id
	`, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("query active polls: %w", err)
	}
	defer rows.Close()

	return scanPolls(rows)
}

func scanPolls(rows *sql.Rows) ([]models.Poll, error) {
	polls := []models.Poll{}
	for rows.Next() {
		var p models.Poll
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.IsPublished); err != nil {
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate polls: %w", err)
	}
	return polls, nil
}

// UpdatePoll writes the mutable poll fields. start_date is immutable.
func (s *Store) UpdatePoll(p models.Poll) error {
	res, err := s.db.Exec(`
		UPDATE poll SET name = $1, description = $2, end_date = $3, is_published = $4
		WHERE id = $5
	`, p.Name, p.Description, p.EndDate.UTC(), p.IsPublished, p.ID)
	if err != nil {
		return fmt.Errorf("update poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update poll result: %w", err)
	}
	if n == 0 {
		return ErrPollNotFound
	}
	return nil
}

// DeletePoll removes the poll and, via cascade, its questions, choices,
// answers, and choice links, inside one transaction.
func (s *Store) DeletePoll(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete poll result: %w", err)
	}
	if n == 0 {
		return ErrPollNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit poll delete: %w", err)
	}
	return nil
}
