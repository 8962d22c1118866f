// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides database fixtures and HTTP helpers for tests.
// The test database is an in-memory sqlite instance named after the test,
// so suites run without an external service.
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pollbox/pollbox/auth"
	"github.com/pollbox/pollbox/cliparse"
	"github.com/pollbox/pollbox/db"
	"github.com/pollbox/pollbox/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	conn, err := db.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection keeps the shared in-memory database alive and
	// serializes access.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3340,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		AdminToken:   "test-admin-token",
	}
}

// CreateTestPoll creates a poll and returns it. The window spans one day
// either side of now; shift start/end via the returned struct and
// UpdateTestPoll when a test needs an inactive window.
func CreateTestPoll(t *testing.T, dbConn *sql.DB, name string, published bool) models.Poll {
	t.Helper()

	id, _ := auth.GenerateID(16)
	poll := models.Poll{
		ID:          id,
		Name:        name,
		Description: "A test poll",
		StartDate:   time.Now().UTC().Add(-24 * time.Hour),
		EndDate:     time.Now().UTC().Add(24 * time.Hour),
		IsPublished: published,
	}

	_, err := dbConn.Exec(`
		INSERT INTO poll (id, name, description, start_date, end_date, is_published)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, poll.ID, poll.Name, poll.Description, poll.StartDate, poll.EndDate, poll.IsPublished)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return poll
}

// SetPollWindow rewrites the poll's time window directly.
func SetPollWindow(t *testing.T, dbConn *sql.DB, pollID string, start, end time.Time) {
	t.Helper()

	_, err := dbConn.Exec(`
		UPDATE poll SET start_date = $1, end_date = $2 WHERE id = $3
	`, start.UTC(), end.UTC(), pollID)
	if err != nil {
		t.Fatalf("Failed to set poll window: %v", err)
	}
}

// AddTestQuestion adds a question to a poll and returns its ID
func AddTestQuestion(t *testing.T, dbConn *sql.DB, pollID, text, questionType string) string {
	t.Helper()

	id, _ := auth.GenerateID(16)
	_, err := dbConn.Exec(`
		INSERT INTO question (id, poll_id, text, type)
		VALUES ($1, $2, $3, $4)
	`, id, pollID, text, questionType)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return id
}

// AddTestChoice adds a choice to a question and returns its ID
func AddTestChoice(t *testing.T, dbConn *sql.DB, questionID, text string) string {
	t.Helper()

	id, _ := auth.GenerateID(12)
	_, err := dbConn.Exec(`
		INSERT INTO choice (id, question_id, text)
		VALUES ($1, $2, $3)
	`, id, questionID, text)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return id
}

// CountAnswers returns the number of answer rows for a poll
func CountAnswers(t *testing.T, dbConn *sql.DB, pollID string) int {
	t.Helper()

	var n int
	err := dbConn.QueryRow(`
		SELECT COUNT(*) FROM answer a
		JOIN question q ON q.id = a.question_id
		WHERE q.poll_id = $1
	`, pollID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count answers: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
