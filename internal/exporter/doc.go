// Package exporter renders a dashboard snapshot into downloadable report
// formats: a flat accounts CSV, a JSON document of the full snapshot, and a
// multi-sheet XLSX workbook.
//
// The Write* functions stream into any io.Writer and back the HTTP export
// endpoint. Exporter persists all formats into the reports directory for the
// one-shot report command.
package exporter
