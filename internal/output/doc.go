// Package output formats scan reports for display or machine consumption.
//
// Two formats are supported:
//   - text — human-readable terminal output grouped by priority (default)
//   - json — full structured JSON report
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*domain.ScanReport].
// [WriteReport] is a convenience helper that handles destination selection.
package output
