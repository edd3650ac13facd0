// Package services defines the shared error taxonomy for the extraction
// pipeline. Every per-file failure is tagged with one of the sentinel markers
// so job results and the run ledger can classify it without string matching.
package services
