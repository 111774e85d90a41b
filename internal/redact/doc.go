// Package redact scrubs credentials from text before it reaches logs or
// API responses. Git failures echo the remote URL, which can carry an
// access token, so every command error passes through Secrets first.
package redact
