// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pollbox/pollbox/models"
)

var (
	ErrInvalidAdminToken  = errors.New("invalid admin token")
	ErrAmbiguousIdentity  = errors.New("exactly one of authenticated user and anonymous_id must be present")
	ErrInvalidAnonymousID = errors.New("anonymous_id must be a positive integer")
)

// UserIDHeader is set by the upstream authentication layer for logged-in
// callers. It is trusted: authentication itself happens before requests
// reach this service.
const UserIDHeader = "X-User-ID"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ValidateAdminToken checks the presented token in constant time.
func ValidateAdminToken(token, want string) error {
	if token == "" || !hmac.Equal([]byte(token), []byte(want)) {
		return ErrInvalidAdminToken
	}
	return nil
}

// AuthenticatedUser returns the caller's user id, if the upstream auth
// layer resolved one. A malformed header is an error, not anonymity.
func AuthenticatedUser(r *http.Request) (*int64, error) {
	raw := r.Header.Get(UserIDHeader)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s header: %q", UserIDHeader, raw)
	}
	return &id, nil
}

// ResolveVoter enforces the authenticated-XOR-anonymous rule: exactly one
// of the authenticated user id and the caller-supplied anonymous id must
// be present. Both or neither is a permission failure, rejected before any
// business logic runs.
func ResolveVoter(r *http.Request, anonymousID *int64) (models.Voter, error) {
	userID, err := AuthenticatedUser(r)
	if err != nil {
		return models.Voter{}, err
	}
	// Identity columns are nullable; storage normalizes NULL halves to a
	// reserved non-positive value when checking uniqueness, so caller-supplied
	// ids must stay in the positive range.
	if anonymousID != nil && *anonymousID <= 0 {
		return models.Voter{}, ErrInvalidAnonymousID
	}
	if (userID != nil) == (anonymousID != nil) {
		return models.Voter{}, ErrAmbiguousIdentity
	}
	return models.Voter{UserID: userID, AnonymousID: anonymousID}, nil
}
