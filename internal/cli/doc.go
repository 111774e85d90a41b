// Package cli implements the codecatalyst command line interface using
// cobra. serve runs the HTTP API; scan performs a one-shot scan and
// prints the report.
package cli
