// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Question type constants
const (
	TypeText         = "text"
	TypeSingleChoice = "single_choice"
	TypeMultiChoice  = "multi_choice"
)

// ValidQuestionType reports whether t is one of the supported question types.
func ValidQuestionType(t string) bool {
	return t == TypeText || t == TypeSingleChoice || t == TypeMultiChoice
}

// Domain types

type Poll struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsPublished bool      `json:"is_published"`
}

// Active reports whether the poll is published and now falls strictly
// inside its time window.
func (p Poll) Active(now time.Time) bool {
	return p.IsPublished && p.StartDate.Before(now) && p.EndDate.After(now)
}

type Question struct {
	ID      string   `json:"id"`
	PollID  string   `json:"poll_id"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Choices []Choice `json:"choices"`
}

// HasChoices reports whether the question type carries selectable choices.
func (q Question) HasChoices() bool {
	return q.Type == TypeSingleChoice || q.Type == TypeMultiChoice
}

type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Voter identifies who cast an answer set. Exactly one field is non-nil
// by the time a request clears the permission boundary.
type Voter struct {
	UserID      *int64
	AnonymousID *int64
}

type Answer struct {
	ID          string   `json:"id"`
	QuestionID  string   `json:"question"`
	Text        *string  `json:"text"`
	Choices     []Choice `json:"choice"`
	UserID      *int64   `json:"-"`
	AnonymousID *int64   `json:"-"`
}

// Request types

type CreatePollRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EndDate     time.Time `json:"end_date"`
	IsPublished bool      `json:"is_published"`
}

type UpdatePollRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EndDate     time.Time `json:"end_date"`
	IsPublished bool      `json:"is_published"`
}

type ChoiceInput struct {
	Text string `json:"text"`
}

type QuestionRequest struct {
	Text    string        `json:"text"`
	Type    string        `json:"type"`
	Choices []ChoiceInput `json:"choices"`
}

// AnswerSubmission is one proposed answer within a vote. Text is a pointer
// so "absent" and "empty string" stay distinguishable for shape validation.
type AnswerSubmission struct {
	QuestionID string   `json:"question"`
	Text       *string  `json:"text"`
	ChoiceIDs  []string `json:"choice"`
}

type VoteRequest struct {
	Answers     []AnswerSubmission `json:"answers"`
	AnonymousID *int64             `json:"anonymous_id"`
}

// Response types

type PollDetail struct {
	Poll
	Questions []Question `json:"questions"`
}

type VoteResponse struct {
	Answers     []Answer `json:"answers"`
	AnonymousID *int64   `json:"anonymous_id,omitempty"`
}

// QuestionHistory is one question of a poll together with the calling
// voter's own answers to it (at most one through the public workflow).
type QuestionHistory struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Answers []Answer `json:"answers"`
}

type PollHistory struct {
	Poll
	Questions []QuestionHistory `json:"questions"`
}

// Result types (admin tally)

type ChoiceCount struct {
	ChoiceID string `json:"choice_id"`
	Text     string `json:"text"`
	Count    int    `json:"count"`
}

type QuestionResult struct {
	QuestionID string        `json:"question_id"`
	Text       string        `json:"text"`
	Type       string        `json:"type"`
	Answers    int           `json:"answers"`
	Choices    []ChoiceCount `json:"choices,omitempty"`
}

type PollResults struct {
	PollID    string           `json:"poll_id"`
	Voters    int              `json:"voters"`
	Questions []QuestionResult `json:"questions"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
