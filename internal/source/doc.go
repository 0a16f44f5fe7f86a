// Package source fetches raw CRM records for the dashboard pipeline.
//
// Two adapters produce the same Dataset shape: a remote CRM REST client
// (cursor-paginated contact search plus per-ID company and owner lookups)
// and a local CSV file reader. FallbackProvider composes them: the remote
// adapter runs first, and only an empty qualified result switches to the
// file adapter. Hard remote errors, including a missing credential, are
// surfaced to the caller and never trigger fallback.
//
// Adapters return raw domain.Contact/Company/Owner records; normalization
// into Accounts is the dataprocessing package's job.
package source
