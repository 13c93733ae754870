// Package event provides the core types for aggregated event listings.
//
// The event package defines the Event value object shared by every pipeline
// stage, the fingerprint identity used to recognize the same real-world
// event across sources, the fixed category taxonomy, and the month/year
// window a pipeline run targets. Fingerprints are deterministic SHA1-based
// keys generated from the normalized event name and date, enabling reliable
// cross-source deduplication and idempotent external writes.
package event
