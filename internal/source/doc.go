// Package source resolves where the event table comes from: a local CSV or
// XLSX file, or a Google Sheets URL exported as CSV.
package source
