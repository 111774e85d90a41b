// Package suggest implements the Suggester interface for each suggestion
// strategy.
//
// Strategies: rule-based comparison against similar repositories,
// deterministic offline comparison, and an external AI chat-completion
// endpoint with credential fallback.
//
// The AI suggester shares a retry helper with exponential back-off and
// rate-limit handling. Its HTTP endpoint comes from configuration so
// tests can redirect calls to local httptest servers.
//
// Use [New] to obtain a Suggester by mode.
package suggest
