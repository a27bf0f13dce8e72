// Package transfer converts between the cards of a dictionary and flat
// delimited text (CSV or TSV).
//
// Import is tolerant of hand-pasted spreadsheet text: the delimiter and an
// optional header row are inferred, rows missing a word or translation are
// counted and skipped, and malformed input never produces an error. The
// analyze pass and the apply pass share the same parsing and deduplication
// logic, so a dry run always predicts what an apply would do against the same
// dictionary state.
package transfer
