// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Poll: surveyed unit with a publication flag and an active time window
  - Question: one prompt, typed text / single_choice / multi_choice
  - Choice: one selectable option of a choice-type question
  - Answer: one voter's response to one question
  - Voter: authenticated user id XOR anonymous id

# Request Types

  - CreatePollRequest / UpdatePollRequest: name, description, end_date, is_published
  - QuestionRequest: text, type, choices
  - VoteRequest: answers plus optional anonymous_id
  - AnswerSubmission: question, text?, choice?

# Response Types

  - PollDetail: poll with nested questions and choices
  - VoteResponse: persisted answers plus the anonymous id, if any
  - PollHistory / QuestionHistory: the caller's own answers per question
  - PollResults / QuestionResult / ChoiceCount: admin tallies
  - ErrorResponse: error, message

# Constants

Question types:

	TypeText         = "text"
	TypeSingleChoice = "single_choice"
	TypeMultiChoice  = "multi_choice"
*/
package models
