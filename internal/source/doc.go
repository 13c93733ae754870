// Package source defines the adapters that turn external listing sites
// into candidate events, and the runner that executes them.
//
// Each adapter owns one site: it builds the site's search URL from the
// requested location, fetches the page, reduces it to text, and hands the
// text to the extraction engine. The runner executes a caller-supplied set
// of adapters with per-host politeness pacing and full fault isolation: a
// failing adapter contributes zero events and a logged warning, nothing
// more.
package source
