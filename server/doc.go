// Package server exposes the conversion pipeline over HTTP.
//
// Routes: POST /convert (the conversion endpoint) and GET /healthz (liveness
// probe). The handler chain is recovery -> logging -> api-key -> mux, so a
// panic anywhere still produces the JSON INTERNAL_ERROR shape and request
// bodies are never logged (only sizes, formats, and outcomes).
package server
