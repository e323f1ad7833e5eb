package ingest

import (
	"bytes"
	"io"
)

// csvState represents the current state of the CSV state machine.
type csvState uint8

const (
	// stateFieldStart indicates we're at the start of a field.
	stateFieldStart csvState = iota
	// stateInField indicates we're inside an unquoted field.
	stateInField
	// stateInQuotedField indicates we're inside a quoted field.
	stateInQuotedField
	// stateQuoteInQuotedField indicates we saw a quote inside a quoted field.
	stateQuoteInQuotedField
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// record is one physical CSV record and the line it starts on.
type record struct {
	line  int
	cells []string
}

// csvScanner splits a whole document into records with a finite state
// machine. Quoted fields may span lines; line numbers always refer to the
// line a record starts on.
type csvScanner struct {
	data      []byte
	delimiter byte
	pos       int
	line      int
}

func newCSVScanner(data []byte, delimiter byte) *csvScanner {
	data = bytes.TrimPrefix(data, utf8BOM)

	return &csvScanner{
		data:      normalizeLineEndings(data),
		delimiter: delimiter,
		line:      1,
	}
}

// next returns the next record, a *MalformedInputError for a damaged row
// (after which scanning resumes on a later line) or io.EOF.
func (s *csvScanner) next() (record, error) {
	if s.pos >= len(s.data) {
		return record{}, io.EOF
	}

	start, startLine := s.pos, s.line
	rec := record{line: startLine}
	state := stateFieldStart

	var field []byte

	for i := start; ; i++ {
		if i >= len(s.data) {
			switch state {
			case stateInQuotedField:
				s.skipPast(start, startLine)

				return record{}, &MalformedInputError{Line: startLine, Reason: "unterminated quoted field"}
			default:
				rec.cells = append(rec.cells, string(field))
				s.pos = i

				return rec, nil
			}
		}

		c := s.data[i]

		switch state {
		case stateFieldStart, stateInField:
			switch {
			case c == s.delimiter:
				rec.cells = append(rec.cells, string(field))
				field = field[:0]
				state = stateFieldStart
			case c == '\n':
				rec.cells = append(rec.cells, string(field))
				s.pos = i + 1
				s.line++

				return rec, nil
			case c == '"' && state == stateFieldStart:
				state = stateInQuotedField
			default:
				// A stray quote inside an unquoted field is kept literally.
				field = append(field, c)
				state = stateInField
			}

		case stateInQuotedField:
			if c == '"' {
				state = stateQuoteInQuotedField

				continue
			}

			if c == '\n' {
				s.line++
			}

			field = append(field, c)

		case stateQuoteInQuotedField:
			switch {
			case c == '"':
				field = append(field, '"')
				state = stateInQuotedField
			case c == s.delimiter:
				rec.cells = append(rec.cells, string(field))
				field = field[:0]
				state = stateFieldStart
			case c == '\n':
				rec.cells = append(rec.cells, string(field))
				s.pos = i + 1
				s.line++

				return rec, nil
			default:
				// The quote that closed the field may belong to a later row,
				// so resume right after the line the record started on.
				if s.line > startLine {
					s.skipPast(start, startLine)
				} else {
					s.skipLine(i)
				}

				return record{}, &MalformedInputError{Line: startLine, Reason: "unexpected character after closing quote"}
			}
		}
	}
}

// skipPast resumes scanning on the physical line after startLine.
func (s *csvScanner) skipPast(start, startLine int) {
	s.line = startLine + 1

	if nl := bytes.IndexByte(s.data[start:], '\n'); nl >= 0 {
		s.pos = start + nl + 1
	} else {
		s.pos = len(s.data)
	}
}

// skipLine resumes scanning after the physical line containing offset i.
func (s *csvScanner) skipLine(i int) {
	if nl := bytes.IndexByte(s.data[i:], '\n'); nl >= 0 {
		s.pos = i + nl + 1
		s.line++
	} else {
		s.pos = len(s.data)
	}
}

// normalizeLineEndings rewrites \r\n and lone \r to \n.
func normalizeLineEndings(data []byte) []byte {
	if bytes.IndexByte(data, '\r') < 0 {
		return data
	}

	out := make([]byte, 0, len(data))

	for i := 0; i < len(data); i++ {
		if data[i] != '\r' {
			out = append(out, data[i])

			continue
		}

		out = append(out, '\n')

		if i+1 < len(data) && data[i+1] == '\n' {
			i++
		}
	}

	return out
}
