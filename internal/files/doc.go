// Package files tracks the report files that the exporter has written to
// the reports directory. The dashboard's reports endpoint uses it to list
// previously generated exports so the UI can offer them for download
// without recomputing a snapshot.
package files
