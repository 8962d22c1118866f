// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves caller identity and validates admin access.

# Admin Access

Admin endpoints require the X-Admin-Token header, compared in constant
time against the configured token:

	if err := auth.ValidateAdminToken(token, cfg.AdminToken); err != nil { ... }

# Voter Identity

A voter is either an authenticated user (X-User-ID, set by the upstream
auth layer) or an anonymous caller identified by a self-supplied integer
token. ResolveVoter enforces that exactly one channel is present; both or
neither is rejected with a permission error before any business logic.

# IDs

GenerateID produces random hex identifiers for polls, questions, choices,
and answers.
*/
package auth
