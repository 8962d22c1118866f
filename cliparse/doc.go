// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags with
environment variable fallback.

Required settings:

  - DATABASE_URL (-d): connection string, or a file path for sqlite
  - ADMIN_TOKEN (--admin-token): token for the admin API

Optional settings:

  - PORT (-p): server port (default: 3340)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
*/
package cliparse
