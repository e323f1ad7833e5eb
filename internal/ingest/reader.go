package ingest

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is a tabular input format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath infers the input format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// RawRow is one data row, keyed by logical column. Columns absent from the
// header are absent from Cells; present columns hold trimmed text.
type RawRow struct {
	// Line is the 1-based source line (CSV) or row number (XLSX).
	Line  int
	Cells map[Column]string
}

// Cell returns the trimmed text of column c, or "" when absent.
func (r RawRow) Cell(c Column) string {
	return r.Cells[c]
}

// Has reports whether the header declared column c.
func (r RawRow) Has(c Column) bool {
	_, ok := r.Cells[c]
	return ok
}

// Options configure ingestion.
type Options struct {
	// Delimiter separates CSV fields. Zero means ','.
	Delimiter rune

	// Aliases extends the header names recognized per column.
	Aliases map[Column][]string

	// Sheet names the XLSX worksheet. Empty means the first sheet.
	Sheet string
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Delimiter: ',', Aliases: DefaultAliases()}
}

func (o Options) delimiter() byte {
	if o.Delimiter == 0 || o.Delimiter > 0x7f {
		return ','
	}

	return byte(o.Delimiter)
}

// Read dispatches on format.
func Read(r io.Reader, format Format, opts Options) iter.Seq2[RawRow, error] {
	switch format {
	case FormatCSV, "":
		return Rows(r, opts)
	case FormatXLSX:
		return XLSXRows(r, opts)
	default:
		return func(yield func(RawRow, error) bool) {
			yield(RawRow{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format))
		}
	}
}

// Rows yields the data rows of a CSV document in source order. Blank rows
// are skipped. Row-level damage is yielded as *MalformedInputError and
// iteration continues; any other error is yielded once and ends iteration.
func Rows(r io.Reader, opts Options) iter.Seq2[RawRow, error] {
	return func(yield func(RawRow, error) bool) {
		data, err := io.ReadAll(r)
		if err != nil {
			yield(RawRow{}, fmt.Errorf("reading csv: %w", err))
			return
		}

		sc := newCSVScanner(data, opts.delimiter())
		emit(sc.next, opts, false, yield)
	}
}

// XLSXRows yields the data rows of the configured worksheet. Trailing empty
// cells are treated as blank rather than as short rows.
func XLSXRows(r io.Reader, opts Options) iter.Seq2[RawRow, error] {
	return func(yield func(RawRow, error) bool) {
		xlFile, err := excelize.OpenReader(r)
		if err != nil {
			yield(RawRow{}, fmt.Errorf("failed to open xlsx: %w", err))
			return
		}
		defer xlFile.Close()

		sheetName := opts.Sheet
		if sheetName == "" {
			sheetList := xlFile.GetSheetList()
			if len(sheetList) == 0 {
				yield(RawRow{}, errors.New("no sheets found in xlsx file"))
				return
			}

			sheetName = sheetList[0]
		}

		rows, err := xlFile.Rows(sheetName)
		if err != nil {
			yield(RawRow{}, fmt.Errorf("failed to read rows of %q: %w", sheetName, err))
			return
		}
		defer rows.Close()

		rowNum := 0
		next := func() (record, error) {
			if !rows.Next() {
				if err := rows.Error(); err != nil {
					return record{}, fmt.Errorf("reading xlsx: %w", err)
				}

				return record{}, io.EOF
			}

			rowNum++

			cols, err := rows.Columns()
			if err != nil {
				return record{}, &MalformedInputError{Line: rowNum, Reason: err.Error()}
			}

			return record{line: rowNum, cells: cols}, nil
		}

		emit(next, opts, true, yield)
	}
}

// emit drives a record source through header detection and column mapping.
func emit(next func() (record, error), opts Options, pad bool, yield func(RawRow, error) bool) {
	aliases := opts.Aliases
	if aliases == nil {
		aliases = DefaultAliases()
	}

	var (
		cm        columnMap
		hasHeader bool
	)

	for {
		rec, err := next()
		if errors.Is(err, io.EOF) {
			if !hasHeader {
				yield(RawRow{}, ErrEmptyInput)
			}

			return
		}

		if err != nil {
			if IsRowError(err) {
				var m *MalformedInputError
				errors.As(err, &m)

				if !yield(RawRow{Line: m.Line}, err) {
					return
				}

				continue
			}

			yield(RawRow{}, err)

			return
		}

		if isBlank(rec.cells) {
			continue
		}

		if !hasHeader {
			cm, err = mapHeader(rec.cells, aliases)
			if err != nil {
				yield(RawRow{Line: rec.line}, fmt.Errorf("line %d: %w", rec.line, err))
				return
			}

			hasHeader = true

			continue
		}

		if !yield(cm.row(rec, pad)) {
			return
		}
	}
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
