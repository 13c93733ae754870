// Package cli implements the eventsync command-line interface.
//
// The CLI wires the configured collaborators (HTTP fetcher, extraction
// engine, CRM client) into a pipeline, runs it for the requested location
// and month/year window, prints the run report as text or JSON, and
// persists the report for later inspection. Exit codes distinguish
// argument errors from sync failures so the tool composes in scripts.
package cli
