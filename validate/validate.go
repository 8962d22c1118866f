// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"errors"

	"github.com/pollbox/pollbox/models"
)

var (
	ErrTextQuestionHasChoices = errors.New("this is a text question, not choice")
	ErrTextOnChoiceQuestion   = errors.New("choice question does not take a text answer")
	ErrTooManyChoices         = errors.New("this question allows only one choice")
	ErrNoChoice               = errors.New("this question requires at least one choice")
	ErrUnknownType            = errors.New("unknown question type")

	ErrIncompleteAnswers = errors.New("please answer all the questions of the poll")
	ErrUnknownQuestion   = errors.New("invalid question id for this poll")
	ErrDuplicateAnswer   = errors.New("question answered more than once")

	ErrDuplicateChoice   = errors.New("choice values must be unique")
	ErrSingleChoiceCount = errors.New("single choice allows only one choice")
	ErrUnknownChoice     = errors.New("choice does not belong to this question")

	ErrPollPublished = errors.New("poll already published and cannot be changed")
)

// AnswerShape checks one submitted answer against its question's type:
// text questions take no choices, single_choice takes exactly one choice
// and no text, multi_choice takes one or more choices and no text.
func AnswerShape(q models.Question, a models.AnswerSubmission) error {
	switch q.Type {
	case models.TypeText:
		if len(a.ChoiceIDs) > 0 {
			return ErrTextQuestionHasChoices
		}
	case models.TypeSingleChoice:
		if a.Text != nil {
			return ErrTextOnChoiceQuestion
		}
		if len(a.ChoiceIDs) > 1 {
			return ErrTooManyChoices
		}
		if len(a.ChoiceIDs) == 0 {
			return ErrNoChoice
		}
	case models.TypeMultiChoice:
		if a.Text != nil {
			return ErrTextOnChoiceQuestion
		}
		if len(a.ChoiceIDs) == 0 {
			return ErrNoChoice
		}
	default:
		return ErrUnknownType
	}
	return nil
}

// AnswerChoices checks that every referenced choice belongs to the answered
// question and that no choice is selected twice.
func AnswerChoices(q models.Question, a models.AnswerSubmission) error {
	seen := make(map[string]struct{}, len(a.ChoiceIDs))
	for _, id := range a.ChoiceIDs {
		if _, dup := seen[id]; dup {
			return ErrDuplicateAnswer
		}
		seen[id] = struct{}{}

		found := false
		for _, c := range q.Choices {
			if c.ID == id {
				found = true
				break
			}
		}
		if !found {
			return ErrUnknownChoice
		}
	}
	return nil
}

// Submission checks that the submitted answers cover the poll's question
// set exactly: same count, every id belongs to the poll, no question
// answered twice within the call.
func Submission(questions []models.Question, answers []models.AnswerSubmission) error {
	if len(answers) != len(questions) {
		return ErrIncompleteAnswers
	}

	byID := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		byID[q.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		if _, ok := byID[a.QuestionID]; !ok {
			return ErrUnknownQuestion
		}
		if _, dup := seen[a.QuestionID]; dup {
			return ErrDuplicateAnswer
		}
		seen[a.QuestionID] = struct{}{}
	}
	return nil
}

// QuestionChoices checks a question's proposed choice list: texts must be
// unique, and a single_choice question with a non-empty list must carry
// exactly one entry. An empty list passes even for single_choice; see
// DESIGN.md for why that gap is kept.
func QuestionChoices(questionType string, choices []models.ChoiceInput) error {
	seen := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		if _, dup := seen[c.Text]; dup {
			return ErrDuplicateChoice
		}
		seen[c.Text] = struct{}{}
	}

	if questionType == models.TypeSingleChoice && len(choices) > 1 {
		return ErrSingleChoiceCount
	}
	return nil
}

// PollMutable rejects structural changes to a published poll.
func PollMutable(p models.Poll) error {
	if p.IsPublished {
		return ErrPollPublished
	}
	return nil
}
