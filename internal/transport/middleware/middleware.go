// Package middleware holds the HTTP middleware mounted by the REST router:
// request IDs, access logging, panic recovery, CORS, bearer auth, rate
// limiting and request metrics.
package middleware

import "net/http"

// Middleware wraps an http.Handler. The router mounts these with chi's Use.
type Middleware func(http.Handler) http.Handler
