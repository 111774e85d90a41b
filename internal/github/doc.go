// Package github provides a gateway to the GitHub REST API for the
// operations the scanner needs: repository metadata, repository search,
// content-presence probes, and pull request creation.
//
// The underlying go-github client is wrapped with an oauth2 token
// transport and a secondary-rate-limit waiter. API errors are mapped to
// the sentinel errors [ErrNotFound], [ErrUnauthorized], and
// [ErrRateLimited] so the HTTP layer can translate them to status codes.
package github
