// Package scan derives repository features and orchestrates scans.
//
// The Analyzer turns GitHub metadata and content probes into a flat
// feature record. The Scanner analyzes the target, finds similar
// repositories through the search API, analyzes those, and hands the
// combined context to the selected suggestion strategy.
package scan
