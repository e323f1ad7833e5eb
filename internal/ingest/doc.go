// Package ingest turns a tracking table (CSV or XLSX) into ordered raw rows.
//
// The first non-blank row is the header. Header cells are matched against
// configurable aliases per logical column, so column order in the source is
// free. Rows are produced lazily through an iterator; row-level damage is
// reported as *MalformedInputError and iteration continues with the next
// row, while source-level failures end the iteration.
package ingest
