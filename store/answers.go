// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"

	"github.com/pollbox/pollbox/auth"
	"github.com/pollbox/pollbox/models"
)

// CreateAnswers persists one voter's full answer set in a single
// transaction: either every answer row and choice link is written, or none
// are. A voter who already answered any of the questions gets
// ErrDuplicateVote and nothing is committed.
//
// Each answer is checked against existing rows before its insert; the
// unique index on the null-normalized (question, voter) tuple is the
// backstop that turns a concurrent duplicate into a constraint error
// instead of a second success.
func (s *Store) CreateAnswers(voter models.Voter, answers []models.Answer) ([]models.Answer, error) {
	if voter.UserID != nil && voter.AnonymousID != nil {
		return nil, ErrBothIdentities
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range answers {
		a := &answers[i]

		var exists bool
		err = tx.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM answer
				WHERE question_id = $1
				  AND COALESCE(user_id, -1) = COALESCE($2, -1)
				  AND COALESCE(anonymous_id, -1) = COALESCE($3, -1)
			)
		`, a.QuestionID, voter.UserID, voter.AnonymousID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("check existing answer: %w", err)
		}
		if exists {
			return nil, ErrDuplicateVote
		}

		id, err := auth.GenerateID(16)
		if err != nil {
			return nil, fmt.Errorf("generate answer id: %w", err)
		}
		a.ID = id
		a.UserID = voter.UserID
		a.AnonymousID = voter.AnonymousID

		_, err = tx.Exec(`
			INSERT INTO answer (id, question_id, text, user_id, anonymous_id)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, a.QuestionID, a.Text, voter.UserID, voter.AnonymousID)
		if isUniqueViolation(err) {
			return nil, ErrDuplicateVote
		}
		if err != nil {
			return nil, fmt.Errorf("insert answer: %w", err)
		}

		for _, c := range a.Choices {
			_, err = tx.Exec(`
				INSERT INTO answer_choice (answer_id, choice_id)
				VALUES ($1, $2)
			`, a.ID, c.ID)
			if err != nil {
				return nil, fmt.Errorf("insert answer choice: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit answers: %w", err)
	}
	return answers, nil
}

// VoterAnswers returns the voter's own answers for the poll's questions,
// keyed by question id, with selected choices resolved to their texts.
func (s *Store) VoterAnswers(pollID string, voter models.Voter) (map[string][]models.Answer, error) {
	rows, err := s.db.Query(`
		SELECT a.id, a.question_id, a.text, a.user_id, a.anonymous_id
		FROM answer a
		JOIN question q ON q.id = a.question_id
		WHERE q.poll_id = $1
		  AND COALESCE(a.user_id, -1) = COALESCE($2, -1)
		  AND COALESCE(a.anonymous_id, -1) = COALESCE($3, -1)
		ORDER BY a.question_id, a.id
	`, pollID, voter.UserID, voter.AnonymousID)
	if err != nil {
		return nil, fmt.Errorf("query voter answers: %w", err)
	}
	defer rows.Close()

	byQuestion := map[string][]models.Answer{}
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Text, &a.UserID, &a.AnonymousID); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}

	for qid, answers := range byQuestion {
		for i := range answers {
			choices, err := s.answerChoices(answers[i].ID)
			if err != nil {
				return nil, err
			}
			answers[i].Choices = choices
		}
		byQuestion[qid] = answers
	}
	return byQuestion, nil
}

func (s *Store) answerChoices(answerID string) ([]models.Choice, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.text
		FROM answer_choice ac
		JOIN choice c ON c.id = ac.choice_id
		WHERE ac.answer_id = $1
		ORDER BY c.id
	`, answerID)
	if err != nil {
		return nil, fmt.Errorf("query answer choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.Text); err != nil {
			return nil, fmt.Errorf("scan answer choice: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answer choices: %w", err)
	}
	return choices, nil
}

// PollResults tallies the poll's answers for the admin results view:
// distinct voter count, per-question answer counts, and per-choice
// selection counts.
func (s *Store) PollResults(pollID string) (models.PollResults, error) {
	results := models.PollResults{PollID: pollID, Questions: []models.QuestionResult{}}

	err := s.db.QueryRow(`
		SELECT COUNT(DISTINCT CAST(COALESCE(a.user_id, -1) AS TEXT) || ':' || CAST(COALESCE(a.anonymous_id, -1) AS TEXT))
		FROM answer a
		JOIN question q ON q.id = a.question_id
		WHERE q.poll_id = $1
	`, pollID).Scan(&results.Voters)
	if err != nil {
		return models.PollResults{}, fmt.Errorf("count voters: %w", err)
	}

	questions, err := s.ListQuestions(pollID)
	if err != nil {
		return models.PollResults{}, err
	}

	for _, q := range questions {
		qr := models.QuestionResult{QuestionID: q.ID, Text: q.Text, Type: q.Type}

		err := s.db.QueryRow(`
			SELECT COUNT(*) FROM answer WHERE question_id = $1
		`, q.ID).Scan(&qr.Answers)
		if err != nil {
			return models.PollResults{}, fmt.Errorf("count answers: %w", err)
		}

		if q.HasChoices() {
			rows, err := s.db.Query(`
				SELECT c.id, c.text, COUNT(ac.answer_id)
				FROM choice c
				LEFT JOIN answer_choice ac ON ac.choice_id = c.id
				WHERE c.question_id = $1
				GROUP BY c.id, c.text
				ORDER BY c.id
			`, q.ID)
			if err != nil {
				return models.PollResults{}, fmt.Errorf("count choices: %w", err)
			}
			for rows.Next() {
				var cc models.ChoiceCount
				if err := rows.Scan(&cc.ChoiceID, &cc.Text, &cc.Count); err != nil {
					rows.Close()
					return models.PollResults{}, fmt.Errorf("scan choice count: %w", err)
				}
				qr.Choices = append(qr.Choices, cc)
			}
			if err := rows.Err(); err != nil {
				rows.Close()
				return models.PollResults{}, fmt.Errorf("iterate choice counts: %w", err)
			}
			rows.Close()
		}

		results.Questions = append(results.Questions, qr)
	}
	return results, nil
}
