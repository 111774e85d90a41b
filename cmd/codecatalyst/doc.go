// Codecatalyst scans GitHub repositories, compares them against similar
// projects, and suggests or applies improvements.
//
// It runs as an HTTP API or as a one-shot CLI scan:
//
//	codecatalyst serve                       # run the HTTP API server
//	codecatalyst scan octocat/hello-world    # scan one repository
//	codecatalyst version                     # print the version
//
// Configuration comes from environment variables, with a .env file as
// optional supplement: CATALYST_HOST, CATALYST_PORT, CATALYST_LOG_LEVEL,
// CATALYST_LOG_FORMAT, GITHUB_TOKEN, GITHUB_API_ROOT, AI_API_KEY,
// AI_API_ENDPOINT, AI_MODEL, and the OPENAI_* fallback triple.
package main
