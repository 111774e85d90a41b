// Package config loads service configuration from environment variables.
//
// A .env file in the working directory is read first when present
// (existing environment variables win). Settings cover the
// HTTP bind address, the GitHub token and API root, and the AI
// chat-completion credentials including the fallback pair tried after
// an authentication failure on the primary endpoint.
package config
