// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("Expected 32 hex chars, got %d", len(id))
	}

	// IDs should be unique
	id2, err := GenerateID(16)
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	if id == id2 {
		t.Error("Two generated IDs were identical")
	}
}

func TestValidateAdminToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{name: "matching token", token: "secret", want: "secret"},
		{name: "wrong token", token: "nope", want: "secret", wantErr: true},
		{name: "empty token", token: "", want: "secret", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminToken(tt.token, tt.want)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminToken() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthenticatedUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	id, err := AuthenticatedUser(r)
	if err != nil || id != nil {
		t.Errorf("Expected no user without header, got %v, %v", id, err)
	}

	r.Header.Set(UserIDHeader, "42")
	id, err = AuthenticatedUser(r)
	if err != nil {
		t.Fatalf("AuthenticatedUser failed: %v", err)
	}
	if id == nil || *id != 42 {
		t.Errorf("Expected user id 42, got %v", id)
	}

	r.Header.Set(UserIDHeader, "not-a-number")
	if _, err := AuthenticatedUser(r); err == nil {
		t.Error("Expected error for malformed header")
	}

	r.Header.Set(UserIDHeader, "-1")
	if _, err := AuthenticatedUser(r); err == nil {
		t.Error("Expected error for non-positive user id")
	}
}

func TestResolveVoter(t *testing.T) {
	anon := int64(7)
	negAnon := int64(-1)
	zeroAnon := int64(0)

	tests := []struct {
		name        string
		userHeader  string
		anonymousID *int64
		wantErr     error
		wantUser    bool
		wantAnon    bool
	}{
		{
			name:       "authenticated only",
			userHeader: "42",
			wantUser:   true,
		},
		{
			name:        "anonymous only",
			anonymousID: &anon,
			wantAnon:    true,
		},
		{
			name:        "both channels",
			userHeader:  "42",
			anonymousID: &anon,
			wantErr:     ErrAmbiguousIdentity,
		},
		{
			name:    "neither channel",
			wantErr: ErrAmbiguousIdentity,
		},
		{
			// -1 is reserved by storage as the null-identity marker in the
			// duplicate-vote check, so it must never arrive as a real id.
			name:        "negative anonymous id",
			anonymousID: &negAnon,
			wantErr:     ErrInvalidAnonymousID,
		},
		{
			name:        "zero anonymous id",
			anonymousID: &zeroAnon,
			wantErr:     ErrInvalidAnonymousID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.userHeader != "" {
				r.Header.Set(UserIDHeader, tt.userHeader)
			}

			voter, err := ResolveVoter(r, tt.anonymousID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ResolveVoter() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if (voter.UserID != nil) != tt.wantUser {
				t.Errorf("UserID presence = %v, want %v", voter.UserID != nil, tt.wantUser)
			}
			if (voter.AnonymousID != nil) != tt.wantAnon {
				t.Errorf("AnonymousID presence = %v, want %v", voter.AnonymousID != nil, tt.wantAnon)
			}
		})
	}
}
