// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP plumbing shared by all handlers.

  - WithLogging: per-request slog lines with a uuid request id
  - JSONResponse / ErrorResponse: JSON writers with the shared error shape
  - ParseJSONBody: request body decoding
  - CORS: cross-origin support for the admin and voting UIs
  - GetClientIP: proxy-aware client address for the access log
*/
package middleware
