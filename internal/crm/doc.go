// Package crm provides the client for the external record-management
// system that canonical events are synchronized into.
//
// The external system is a Salesforce-style REST API: locations are
// top-level records, events are written either as detail records scoped to
// a location or, when the detail object is absent from the org's schema,
// as a JSON summary field on the location record itself. Errors carry the
// classification the sync layer branches on: not-found, schema-missing,
// transient, permanent.
package crm
