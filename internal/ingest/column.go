package ingest

import (
	"fmt"
	"strings"

	"analytics-codegen/internal/match"
)

// Column is a logical column of the tracking table.
type Column int

const (
	ColumnScreen Column = iota
	ColumnComponent
	ColumnSection
	ColumnElement
	ColumnAction
	ColumnLabel
	ColumnParameters
	ColumnAdvertisement
)

// Columns returns every logical column in declaration order.
func Columns() []Column {
	return []Column{
		ColumnScreen, ColumnComponent, ColumnSection, ColumnElement,
		ColumnAction, ColumnLabel, ColumnParameters, ColumnAdvertisement,
	}
}

var columnNames = map[Column]string{
	ColumnScreen:        "screen",
	ColumnComponent:     "component",
	ColumnSection:       "section",
	ColumnElement:       "element",
	ColumnAction:        "action",
	ColumnLabel:         "label",
	ColumnParameters:    "parameters",
	ColumnAdvertisement: "advertisement",
}

// String returns the logical column name.
func (c Column) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Column(%d)", int(c))
}

// ParseColumn parses a logical column name.
func ParseColumn(s string) (Column, error) {
	for c, name := range columnNames {
		if name == strings.TrimSpace(strings.ToLower(s)) {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown column %q", s)
}

// DefaultAliases returns the header aliases recognized for each column.
// The logical name itself is always recognized.
func DefaultAliases() map[Column][]string {
	return map[Column][]string{
		ColumnScreen:        {"screen"},
		ColumnComponent:     {"component"},
		ColumnSection:       {"section"},
		ColumnElement:       {"element"},
		ColumnAction:        {"action"},
		ColumnLabel:         {"label"},
		ColumnParameters:    {"parameters", "params", "event_details", "details"},
		ColumnAdvertisement: {"advertisement", "ad_context"},
	}
}

// columnMap maps logical columns to physical indices.
type columnMap struct {
	index map[Column]int
	// maxIndex is the highest physical index referenced.
	maxIndex int
}

func mapHeader(header []string, aliases map[Column][]string) (columnMap, error) {
	lookup := make(map[string]Column)

	for _, c := range Columns() {
		lookup[match.NormalizeIdent(c.String())] = c

		for _, alias := range aliases[c] {
			lookup[match.NormalizeIdent(alias)] = c
		}
	}

	cm := columnMap{index: make(map[Column]int), maxIndex: -1}

	for i, cell := range header {
		c, ok := lookup[match.NormalizeIdent(strings.TrimSpace(cell))]
		if !ok {
			continue
		}

		if prev, dup := cm.index[c]; dup {
			return columnMap{}, fmt.Errorf("%w: %s in columns %d and %d", ErrDuplicateColumn, c, prev+1, i+1)
		}

		cm.index[c] = i
		cm.maxIndex = max(cm.maxIndex, i)
	}

	if _, ok := cm.index[ColumnAction]; !ok {
		return columnMap{}, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnAction)
	}

	return cm, nil
}

// row projects a physical record onto the logical columns. Short records
// are malformed unless pad is set, in which case missing cells are blank.
func (cm columnMap) row(rec record, pad bool) (RawRow, error) {
	if !pad && len(rec.cells) <= cm.maxIndex {
		return RawRow{Line: rec.line}, &MalformedInputError{
			Line:   rec.line,
			Reason: fmt.Sprintf("row has %d columns, header references column %d", len(rec.cells), cm.maxIndex+1),
		}
	}

	row := RawRow{Line: rec.line, Cells: make(map[Column]string, len(cm.index))}

	for c, idx := range cm.index {
		if idx < len(rec.cells) {
			row.Cells[c] = strings.TrimSpace(rec.cells[idx])
		} else {
			row.Cells[c] = ""
		}
	}

	return row, nil
}
