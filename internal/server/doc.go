// Package server exposes the scan and apply flows over HTTP. API
// responses are JSON, errors included, and domain sentinels map onto
// the matching status codes; the root route answers with a plain
// liveness text. Scanners and appliers come from factories so a
// request can carry its own GitHub token.
package server
