// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pollbox/pollbox/auth"
	"github.com/pollbox/pollbox/models"
	"github.com/pollbox/pollbox/store"
	"github.com/pollbox/pollbox/testutil"
)

func i64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func TestListActivePollsHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserPollHandler(store.New(db), cfg)

	active := testutil.CreateTestPoll(t, db, "Active", true)
	testutil.CreateTestPoll(t, db, "Draft", false)
	expired := testutil.CreateTestPoll(t, db, "Expired", true)
	testutil.SetPollWindow(t, db, expired.ID,
		time.Now().UTC().Add(-48*time.Hour), time.Now().UTC().Add(-24*time.Hour))

	req := testutil.MakeRequest("GET", "/polls/user/", nil, nil)
	w := httptest.NewRecorder()
	handler.ListActive(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var polls []models.Poll
	testutil.AssertJSON(t, w, &polls)
	if len(polls) != 1 {
		t.Fatalf("Expected 1 active poll, got %d", len(polls))
	}
	if polls[0].ID != active.ID {
		t.Errorf("Expected poll %s, got %s", active.ID, polls[0].ID)
	}
}

func TestGetDetail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserPollHandler(store.New(db), cfg)

	active := testutil.CreateTestPoll(t, db, "Visible", true)
	qID := testutil.AddTestQuestion(t, db, active.ID, "Pick", models.TypeSingleChoice)
	testutil.AddTestChoice(t, db, qID, "yes")
	draft := testutil.CreateTestPoll(t, db, "Hidden", false)

	tests := []struct {
		name           string
		pollID         string
		expectedStatus int
	}{
		{"active poll", active.ID, http.StatusOK},
		{"unpublished poll hidden", draft.ID, http.StatusNotFound},
		{"unknown poll", "missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/polls/user/"+tt.pollID, nil, nil)
			req.SetPathValue("id", tt.pollID)
			w := httptest.NewRecorder()
			handler.GetDetail(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var detail models.PollDetail
				testutil.AssertJSON(t, w, &detail)
				if len(detail.Questions) != 1 {
					t.Errorf("Expected 1 question, got %d", len(detail.Questions))
				}
			}
		})
	}
}

func TestVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserPollHandler(store.New(db), cfg)

	poll := testutil.CreateTestPoll(t, db, "Ballot", true)
	singleID := testutil.AddTestQuestion(t, db, poll.ID, "Pick one", models.TypeSingleChoice)
	yesID := testutil.AddTestChoice(t, db, singleID, "yes")
	noID := testutil.AddTestChoice(t, db, singleID, "no")
	textID := testutil.AddTestQuestion(t, db, poll.ID, "Say why", models.TypeText)

	complete := func(anonID *int64) models.VoteRequest {
		return models.VoteRequest{
			AnonymousID: anonID,
			Answers: []models.AnswerSubmission{
				{QuestionID: singleID, ChoiceIDs: []string{yesID}},
				{QuestionID: textID, Text: strPtr("because")},
			},
		}
	}

	tests := []struct {
		name           string
		body           models.VoteRequest
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:           "anonymous vote",
			body:           complete(i64Ptr(7)),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "authenticated vote",
			body:           complete(nil),
			headers:        map[string]string{auth.UserIDHeader: "101"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "no identity",
			body:           complete(nil),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "both identities",
			body:           complete(i64Ptr(8)),
			headers:        map[string]string{auth.UserIDHeader: "102"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "negative anonymous_id",
			body:           complete(i64Ptr(-1)),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "incomplete answer set",
			body: models.VoteRequest{
				AnonymousID: i64Ptr(9),
				Answers: []models.AnswerSubmission{
					{QuestionID: singleID, ChoiceIDs: []string{yesID}},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown question",
			body: models.VoteRequest{
				AnonymousID: i64Ptr(10),
				Answers: []models.AnswerSubmission{
					{QuestionID: singleID, ChoiceIDs: []string{yesID}},
					{QuestionID: "missing", Text: strPtr("lost")},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "two choices on single choice",
			body: models.VoteRequest{
				AnonymousID: i64Ptr(11),
				Answers: []models.AnswerSubmission{
					{QuestionID: singleID, ChoiceIDs: []string{yesID, noID}},
					{QuestionID: textID, Text: strPtr("greedy")},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "text on choice question",
			body: models.VoteRequest{
				AnonymousID: i64Ptr(12),
				Answers: []models.AnswerSubmission{
					{QuestionID: singleID, Text: strPtr("yes"), ChoiceIDs: []string{yesID}},
					{QuestionID: textID, Text: strPtr("ok")},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "choice from another question",
			body: models.VoteRequest{
				AnonymousID: i64Ptr(13),
				Answers: []models.AnswerSubmission{
					{QuestionID: singleID, ChoiceIDs: []string{"bogus-choice"}},
					{QuestionID: textID, Text: strPtr("ok")},
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.CountAnswers(t, db, poll.ID)

			req := testutil.MakeRequest("POST", "/polls/user/"+poll.ID, tt.body, tt.headers)
			req.SetPathValue("id", poll.ID)
			w := httptest.NewRecorder()
			handler.Vote(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			after := testutil.CountAnswers(t, db, poll.ID)
			if tt.expectedStatus == http.StatusCreated {
				if after != before+2 {
					t.Errorf("Expected %d answers after vote, got %d", before+2, after)
				}
				var resp models.VoteResponse
				testutil.AssertJSON(t, w, &resp)
				if len(resp.Answers) != 2 {
					t.Errorf("Expected 2 answers in response, got %d", len(resp.Answers))
				}
			} else if after != before {
				t.Errorf("Rejected vote wrote rows: %d -> %d", before, after)
			}
		})
	}
}

func TestVoteDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserPollHandler(store.New(db), cfg)

	poll := testutil.CreateTestPoll(t, db, "Once", true)
	textID := testutil.AddTestQuestion(t, db, poll.ID, "Thoughts?", models.TypeText)

	body := models.VoteRequest{
		AnonymousID: i64Ptr(42),
		Answers: []models.AnswerSubmission{
			{QuestionID: textID, Text: strPtr("first")},
		},
	}

	req := testutil.MakeRequest("POST", "/polls/user/"+poll.ID, body, nil)
	req.SetPathValue("id", poll.ID)
	w := httptest.NewRecorder()
	handler.Vote(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	req = testutil.MakeRequest("POST", "/polls/user/"+poll.ID, body, nil)
	req.SetPathValue("id", poll.ID)
	w = httptest.NewRecorder()
	handler.Vote(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)

	if n := testutil.CountAnswers(t, db, poll.ID); n != 1 {
		t.Errorf("Expected 1 answer after duplicate vote, got %d", n)
	}
}

func TestVoteClosedPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserPollHandler(store.New(db), cfg)

	poll := testutil.CreateTestPoll(t, db, "Closed", true)
	textID := testutil.AddTestQuestion(t, db, poll.ID, "Anything?", models.TypeText)
	testutil.SetPollWindow(t, db, poll.ID,
		time.Now().UTC().Add(-48*time.Hour), time.Now().UTC().Add(-24*time.Hour))

	body := models.VoteRequest{
		AnonymousID: i64Ptr(1),
		Answers: []models.AnswerSubmission{
			{QuestionID: textID, Text: strPtr("too late")},
		},
	}
	req := testutil.MakeRequest("POST", "/polls/user/"+poll.ID, body, nil)
	req.SetPathValue("id", poll.ID)
	w := httptest.NewRecorder()
	handler.Vote(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestShowAnswers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserPollHandler(store.New(db), cfg)

	poll := testutil.CreateTestPoll(t, db, "History", true)
	singleID := testutil.AddTestQuestion(t, db, poll.ID, "Pick", models.TypeSingleChoice)
	yesID := testutil.AddTestChoice(t, db, singleID, "yes")
	testutil.AddTestChoice(t, db, singleID, "no")

	body := models.VoteRequest{
		AnonymousID: i64Ptr(42),
		Answers: []models.AnswerSubmission{
			{QuestionID: singleID, ChoiceIDs: []string{yesID}},
		},
	}
	req := testutil.MakeRequest("POST", "/polls/user/"+poll.ID, body, nil)
	req.SetPathValue("id", poll.ID)
	w := httptest.NewRecorder()
	handler.Vote(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	req = testutil.MakeRequest("GET", "/polls/user/show_answers?anonymous_id=42", nil, nil)
	w = httptest.NewRecorder()
	handler.ShowAnswers(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var history []models.PollHistory
	testutil.AssertJSON(t, w, &history)
	if len(history) != 1 {
		t.Fatalf("Expected 1 poll in history, got %d", len(history))
	}
	if len(history[0].Questions) != 1 {
		t.Fatalf("Expected 1 question in history, got %d", len(history[0].Questions))
	}
	answers := history[0].Questions[0].Answers
	if len(answers) != 1 {
		t.Fatalf("Expected 1 answer, got %d", len(answers))
	}
	if len(answers[0].Choices) != 1 || answers[0].Choices[0].Text != "yes" {
		t.Errorf("Expected choice resolved to \"yes\", got %+v", answers[0].Choices)
	}

	// A voter with no answers still sees the poll with empty answer lists.
	req = testutil.MakeRequest("GET", "/polls/user/show_answers?anonymous_id=999", nil, nil)
	w = httptest.NewRecorder()
	handler.ShowAnswers(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	history = nil
	testutil.AssertJSON(t, w, &history)
	if len(history) != 1 || len(history[0].Questions[0].Answers) != 0 {
		t.Errorf("Expected empty answer list for non-voter, got %+v", history)
	}
}

func TestShowAnswersIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserPollHandler(store.New(db), cfg)

	tests := []struct {
		name           string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{"no identity", "/polls/user/show_answers", nil, http.StatusForbidden},
		{"both identities", "/polls/user/show_answers?anonymous_id=1",
			map[string]string{auth.UserIDHeader: "5"}, http.StatusForbidden},
		{"malformed anonymous_id", "/polls/user/show_answers?anonymous_id=abc", nil, http.StatusBadRequest},
		{"negative anonymous_id", "/polls/user/show_answers?anonymous_id=-1", nil, http.StatusBadRequest},
		{"authenticated", "/polls/user/show_answers",
			map[string]string{auth.UserIDHeader: "5"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", tt.path, nil, tt.headers)
			w := httptest.NewRecorder()
			handler.ShowAnswers(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}
