package ingest

import (
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type item struct {
	row RawRow
	err error
}

func collect(seq iter.Seq2[RawRow, error]) []item {
	var out []item
	for row, err := range seq {
		out = append(out, item{row: row, err: err})
	}

	return out
}

func TestRows_Basic(t *testing.T) {
	input := "Action,Screen,Component,Section,Element,Label,Params\n" +
		"tap,ad,cart,buy_now,button,google,response_id\n" +
		"view,home,,,,,\n"

	items := collect(Rows(strings.NewReader(input), DefaultOptions()))
	require.Len(t, items, 2)

	require.NoError(t, items[0].err)
	first := items[0].row
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "tap", first.Cell(ColumnAction))
	assert.Equal(t, "ad", first.Cell(ColumnScreen))
	assert.Equal(t, "buy_now", first.Cell(ColumnSection))
	assert.Equal(t, "response_id", first.Cell(ColumnParameters))
	assert.False(t, first.Has(ColumnAdvertisement))

	require.NoError(t, items[1].err)
	assert.Equal(t, 3, items[1].row.Line)
	assert.Equal(t, "", items[1].row.Cell(ColumnComponent))
	assert.True(t, items[1].row.Has(ColumnComponent))
}

func TestRows_TrimsCellsAndSkipsBlankRows(t *testing.T) {
	input := "\n screen , action \n\n ad ,  tap \n , \n"

	items := collect(Rows(strings.NewReader(input), DefaultOptions()))
	require.Len(t, items, 1)
	require.NoError(t, items[0].err)
	assert.Equal(t, 4, items[0].row.Line)
	assert.Equal(t, "ad", items[0].row.Cell(ColumnScreen))
	assert.Equal(t, "tap", items[0].row.Cell(ColumnAction))
}

func TestRows_QuotedFields(t *testing.T) {
	input := "screen,action,parameters\n" +
		"\"ad\",tap,\"a;b\"\n" +
		"home,\"vi\"\"ew\",\"multi\nline\"\n" +
		"my_ad,tap,x\n"

	items := collect(Rows(strings.NewReader(input), DefaultOptions()))
	require.Len(t, items, 3)

	assert.Equal(t, "a;b", items[0].row.Cell(ColumnParameters))
	assert.Equal(t, `vi"ew`, items[1].row.Cell(ColumnAction))
	assert.Equal(t, "multi\nline", items[1].row.Cell(ColumnParameters))
	assert.Equal(t, 3, items[1].row.Line)
	// The multi-line record spans lines 3 and 4.
	assert.Equal(t, 5, items[2].row.Line)
}

func TestRows_UnterminatedQuote(t *testing.T) {
	input := "screen,action\n" +
		"ad,tap\n" +
		"\"ad,tap\n" +
		"home,view\n"

	items := collect(Rows(strings.NewReader(input), DefaultOptions()))
	require.Len(t, items, 3)

	require.NoError(t, items[0].err)
	assert.Equal(t, 2, items[0].row.Line)

	var malformed *MalformedInputError
	require.ErrorAs(t, items[1].err, &malformed)
	assert.Equal(t, 3, malformed.Line)
	assert.True(t, IsRowError(items[1].err))

	require.NoError(t, items[2].err)
	assert.Equal(t, 4, items[2].row.Line)
	assert.Equal(t, "home", items[2].row.Cell(ColumnScreen))
}

func TestRows_GarbageAfterClosingQuote(t *testing.T) {
	input := "screen,action\n\"ad\"x,tap\nhome,view\n"

	items := collect(Rows(strings.NewReader(input), DefaultOptions()))
	require.Len(t, items, 2)

	var malformed *MalformedInputError
	require.ErrorAs(t, items[0].err, &malformed)
	assert.Equal(t, 2, malformed.Line)

	require.NoError(t, items[1].err)
	assert.Equal(t, 3, items[1].row.Line)
}

func TestRows_UnclosedQuoteBeforeQuotedCell(t *testing.T) {
	input := "screen,action,parameters\n" +
		"ad,\"tap\n" +
		"home,view,\"response_id\"\n" +
		"home,tap,\n"

	items := collect(Rows(strings.NewReader(input), DefaultOptions()))
	require.Len(t, items, 3)

	var malformed *MalformedInputError
	require.ErrorAs(t, items[0].err, &malformed)
	assert.Equal(t, 2, malformed.Line)

	require.NoError(t, items[1].err)
	assert.Equal(t, 3, items[1].row.Line)
	assert.Equal(t, "response_id", items[1].row.Cell(ColumnParameters))

	require.NoError(t, items[2].err)
	assert.Equal(t, 4, items[2].row.Line)
}

func TestRows_ShortRow(t *testing.T) {
	input := "screen,component,action\nad,cart\nad,cart,tap\n"

	items := collect(Rows(strings.NewReader(input), DefaultOptions()))
	require.Len(t, items, 2)

	var malformed *MalformedInputError
	require.ErrorAs(t, items[0].err, &malformed)
	assert.Equal(t, 2, malformed.Line)
	assert.Equal(t, 2, items[0].row.Line)

	require.NoError(t, items[1].err)
}

func TestRows_CRLFAndBOM(t *testing.T) {
	input := "\xEF\xBB\xBFscreen,action\r\nad,tap\r\nhome,view"

	items := collect(Rows(strings.NewReader(input), DefaultOptions()))
	require.Len(t, items, 2)
	assert.Equal(t, "ad", items[0].row.Cell(ColumnScreen))
	assert.Equal(t, 3, items[1].row.Line)
	assert.Equal(t, "view", items[1].row.Cell(ColumnAction))
}

func TestRows_FatalHeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "missing action", input: "screen,component\nad,cart\n", want: ErrMissingColumn},
		{name: "duplicate column", input: "action,Action\ntap,tap\n", want: ErrDuplicateColumn},
		{name: "empty", input: "\n\n", want: ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := collect(Rows(strings.NewReader(tt.input), DefaultOptions()))
			require.Len(t, items, 1)
			require.ErrorIs(t, items[0].err, tt.want)
			assert.False(t, IsRowError(items[0].err))
		})
	}
}

func TestRows_CustomDelimiterAndAliases(t *testing.T) {
	opts := DefaultOptions()
	opts.Delimiter = '\t'
	opts.Aliases[ColumnAction] = append(opts.Aliases[ColumnAction], "Event Action")

	input := "Event Action\tScreen\ntap\tad\n"

	items := collect(Rows(strings.NewReader(input), opts))
	require.Len(t, items, 1)
	assert.Equal(t, "tap", items[0].row.Cell(ColumnAction))
	assert.Equal(t, "ad", items[0].row.Cell(ColumnScreen))
}

func TestRows_StopsWhenConsumerBreaks(t *testing.T) {
	input := "action\ntap\nview\nhide\n"

	var seen []string
	for row, err := range Rows(strings.NewReader(input), DefaultOptions()) {
		require.NoError(t, err)
		seen = append(seen, row.Cell(ColumnAction))

		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"tap", "view"}, seen)
}

func TestRows_ReadError(t *testing.T) {
	boom := errors.New("boom")

	items := collect(Rows(failingReader{err: boom}, DefaultOptions()))
	require.Len(t, items, 1)
	require.ErrorIs(t, items[0].err, boom)
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestXLSXRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Screen", "Component", "Action", "Parameters"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"ad", "cart", "tap", "response_id"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"home", "", "view"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	items := collect(XLSXRows(buf, DefaultOptions()))
	require.Len(t, items, 2)

	require.NoError(t, items[0].err)
	assert.Equal(t, 2, items[0].row.Line)
	assert.Equal(t, "cart", items[0].row.Cell(ColumnComponent))
	assert.Equal(t, "response_id", items[0].row.Cell(ColumnParameters))

	require.NoError(t, items[1].err)
	assert.Equal(t, "", items[1].row.Cell(ColumnParameters))
	assert.True(t, items[1].row.Has(ColumnParameters))
}

func TestXLSXRows_NotAWorkbook(t *testing.T) {
	items := collect(XLSXRows(strings.NewReader("screen,action"), DefaultOptions()))
	require.Len(t, items, 1)
	require.Error(t, items[0].err)
	assert.False(t, IsRowError(items[0].err))
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("events.CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = FormatFromPath("/tmp/events.xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = FormatFromPath("events.json")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}
