// Copyright (c) 2026 The Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP surface using Go 1.22+ routing.

Admin routes live under /polls/admin/, the public voting surface under
/polls/user/. The literal show_answers route is registered alongside the
{id} routes; the mux prefers the more specific literal pattern.
*/
package router
