// Package dataprocessing turns raw CRM records into normalized accounts.
// It consolidates the tolerant field parsing, the brand classification
// heuristic, and the contact-to-account transformer into one package that
// sits between the source adapters and the analytics engine.
//
// # Architecture
//
// The package is organized into three components:
//
// 1. Currency: tolerant parsing/formatting of currency-decorated numbers
// 2. Brand: heuristic mapping of account names to brand labels
// 3. Transformer: builds domain.Account from a contact plus its looked-up
// company and owner associations
//
// # Data Flow
//
//	Contact + Company/Owner lookups → Transformer → domain.Account → analytics
//
// # Error Handling
//
// Everything in this package degrades instead of failing: unparseable
// numbers become 0, missing associations become absent optional fields, and
// unrecognizable names fall back to coarse labels. No function here returns
// an error; the source adapters own transport failures and the analytics
// engine owns per-computation skips.
package dataprocessing
