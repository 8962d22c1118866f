// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pollbox API server.

Pollbox is a poll-management backend: admins define polls with typed
questions (free text, single choice, multi choice) and a published time
window; voters - authenticated upstream or anonymous by token - submit one
answer set per poll and can review their own answers.

# Starting the Server

The server reads configuration from environment variables (optionally via
a .env file) or CLI flags:

	DATABASE_URL=polls.db ADMIN_TOKEN=... go run main.go

Or with flags:

	go run main.go -p 3340 -d polls.db --admin-token ...

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string (file path for sqlite)
  - ADMIN_TOKEN (--admin-token): token for the admin API

Optional settings:

  - PORT (-p): server port (default: 3340)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (admin CRUD, voting, history, results)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: request/response and domain types
  - validate: pure submission and admin-input checks
  - store: typed repositories with transactional writes
  - auth: admin token and voter identity resolution
  - db: connection setup and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
