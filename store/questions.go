// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"

	"github.com/pollbox/pollbox/auth"
	"github.com/pollbox/pollbox/models"
)

// ListQuestions returns the poll's questions with their choices.
func (s *Store) ListQuestions(pollID string) ([]models.Question, error) {
	rows, err := s.db.Query(`
		SELECT q.id, q.poll_id, q.text, q.type, c.id, c.text
		FROM question q
		LEFT JOIN choice c ON c.question_id = q.id
		WHERE q.poll_id = $1
		ORDER BY q.id, c.id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// GetQuestion returns one question scoped to its poll, with choices.
func (s *Store) GetQuestion(pollID, id string) (models.Question, error) {
	rows, err := s.db.Query(`
		SELECT q.id, q.poll_id, q.text, q.type, c.id, c.text
		FROM question q
		LEFT JOIN choice c ON c.question_id = q.id
		WHERE q.poll_id = $1 AND q.id = $2
		ORDER BY c.id
	`, pollID, id)
	if err != nil {
		return models.Question{}, fmt.Errorf("query question: %w", err)
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return models.Question{}, err
	}
	if len(questions) == 0 {
		return models.Question{}, ErrQuestionNotFound
	}
	return questions[0], nil
}

func scanQuestions(rows *sql.Rows) ([]models.Question, error) {
	questions := []models.Question{}
	index := map[string]int{}
	for rows.Next() {
		var q models.Question
		var choiceID, choiceText *string
		if err := rows.Scan(&q.ID, &q.PollID, &q.Text, &q.Type, &choiceID, &choiceText); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		i, ok := index[q.ID]
		if !ok {
			q.Choices = []models.Choice{}
			questions = append(questions, q)
			i = len(questions) - 1
			index[q.ID] = i
		}
		if choiceID != nil {
			questions[i].Choices = append(questions[i].Choices, models.Choice{ID: *choiceID, Text: *choiceText})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

// CreateQuestion inserts the question and its choices in one transaction.
// Duplicate question text within the poll and duplicate choice text within
// the question surface as domain errors derived from the unique constraints.
func (s *Store) CreateQuestion(q models.Question, choices []models.ChoiceInput) (models.Question, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Question{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO question (id, poll_id, text, type)
		VALUES ($1, $2, $3, $4)
	`, q.ID, q.PollID, q.Text, q.Type)
	if isUniqueViolation(err) {
		return models.Question{}, ErrDuplicateQuestion
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("insert question: %w", err)
	}

	q.Choices, err = insertChoices(tx, q.ID, choices)
	if err != nil {
		return models.Question{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Question{}, fmt.Errorf("commit question: %w", err)
	}
	return q, nil
}

// UpdateQuestion rewrites the question's text and type and replaces its
// choice list wholesale: existing choices are deleted, then the submitted
// ones inserted, all in one transaction.
func (s *Store) UpdateQuestion(q models.Question, choices []models.ChoiceInput) (models.Question, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Question{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE question SET text = $1, type = $2
		WHERE id = $3 AND poll_id = $4
	`, q.Text, q.Type, q.ID, q.PollID)
	if isUniqueViolation(err) {
		return models.Question{}, ErrDuplicateQuestion
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("update question: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Question{}, fmt.Errorf("update question result: %w", err)
	}
	if n == 0 {
		return models.Question{}, ErrQuestionNotFound
	}

	if _, err := tx.Exec(`DELETE FROM choice WHERE question_id = $1`, q.ID); err != nil {
		return models.Question{}, fmt.Errorf("delete old choices: %w", err)
	}

	q.Choices, err = insertChoices(tx, q.ID, choices)
	if err != nil {
		return models.Question{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Question{}, fmt.Errorf("commit question update: %w", err)
	}
	return q, nil
}

func insertChoices(tx *sql.Tx, questionID string, choices []models.ChoiceInput) ([]models.Choice, error) {
	out := []models.Choice{}
	for _, c := range choices {
		id, err := auth.GenerateID(12)
		if err != nil {
			return nil, fmt.Errorf("generate choice id: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO choice (id, question_id, text)
			VALUES ($1, $2, $3)
		`, id, questionID, c.Text)
		if isUniqueViolation(err) {
			return nil, ErrDuplicateChoice
		}
		if err != nil {
			return nil, fmt.Errorf("insert choice: %w", err)
		}
		out = append(out, models.Choice{ID: id, Text: c.Text})
	}
	return out, nil
}

// DeleteQuestion removes one question scoped to its poll; choices and
// answers cascade.
func (s *Store) DeleteQuestion(pollID, id string) error {
	res, err := s.db.Exec(`DELETE FROM question WHERE id = $1 AND poll_id = $2`, id, pollID)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question result: %w", err)
	}
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}
