package merge

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// BeginMarker opens the managed region.
	BeginMarker = "// BEGIN GENERATED TRACKING FUNCTIONS"
	// EndMarker closes the managed region.
	EndMarker = "// END GENERATED TRACKING FUNCTIONS"
)

// ErrMalformedRegion is returned when the destination's markers or managed
// declarations cannot be parsed unambiguously.
var ErrMalformedRegion = errors.New("merge: malformed generated region")

// funcLine matches the first line of a function declaration in the emitted
// languages, e.g. "func trackX(" or "static func trackX(".
var funcLine = regexp.MustCompile(`^(\s*)(?:[A-Za-z@]+\s+)*func\s+([A-Za-z_][A-Za-z0-9_]*)`)

// chunk is a piece of the managed region: a named function block or opaque
// text kept verbatim.
type chunk struct {
	name string
	text string
}

func (c chunk) isFunc() bool { return c.name != "" }

// region locates the markers in a file.
type region struct {
	// bodyStart and bodyEnd delimit the bytes between the marker lines.
	bodyStart int
	bodyEnd   int
	found     bool
}

// locate finds the managed region. A file without any marker has no region;
// any other marker layout than one begin followed by one end is malformed.
func locate(content string) (region, error) {
	var (
		begins     int
		ends       int
		beginAfter = -1
		endAt      = -1
	)

	offset := 0

	for _, line := range strings.SplitAfter(content, "\n") {
		trimmed := strings.TrimSpace(line)

		switch trimmed {
		case BeginMarker:
			begins++
			beginAfter = offset + len(line)
		case EndMarker:
			ends++
			endAt = offset
		}

		offset += len(line)
	}

	switch {
	case begins == 0 && ends == 0:
		return region{}, nil
	case begins != 1 || ends != 1:
		return region{}, fmt.Errorf("%w: found %d begin and %d end markers", ErrMalformedRegion, begins, ends)
	case endAt < beginAfter:
		return region{}, fmt.Errorf("%w: end marker precedes begin marker", ErrMalformedRegion)
	}

	return region{bodyStart: beginAfter, bodyEnd: endAt, found: true}, nil
}

// parseChunks splits the region body into function blocks and opaque text.
// A function block starts at its doc comment and ends at the first line that
// is a closing brace at the declaration's indentation.
func parseChunks(body string) ([]chunk, error) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")

	var (
		chunks  []chunk
		pending []string
		seen    = make(map[string]bool)
	)

	flush := func(lines []string) {
		if text := trimBlankLines(lines); text != "" {
			chunks = append(chunks, chunk{text: text})
		}
	}

	for i := 0; i < len(lines); i++ {
		m := funcLine.FindStringSubmatch(lines[i])
		if m == nil {
			pending = append(pending, lines[i])
			continue
		}

		indent, name := m[1], m[2]

		if seen[name] {
			return nil, fmt.Errorf("%w: function %s declared twice", ErrMalformedRegion, name)
		}

		seen[name] = true

		doc := leadingComment(pending)
		flush(pending[:len(pending)-len(doc)])
		pending = nil

		block := append(doc, lines[i])
		closed := false

		for i+1 < len(lines) {
			i++
			block = append(block, lines[i])

			if strings.TrimRight(lines[i], " \t") == indent+"}" {
				closed = true
				break
			}
		}

		if !closed {
			return nil, fmt.Errorf("%w: function %s is not closed before the end marker", ErrMalformedRegion, name)
		}

		chunks = append(chunks, chunk{name: name, text: strings.Join(block, "\n")})
	}

	flush(pending)

	return chunks, nil
}

// leadingComment returns the comment lines directly preceding a declaration.
func leadingComment(lines []string) []string {
	start := len(lines)

	for start > 0 {
		trimmed := strings.TrimSpace(lines[start-1])
		if !strings.HasPrefix(trimmed, "//") || trimmed == BeginMarker {
			break
		}

		start--
	}

	return append([]string(nil), lines[start:]...)
}

func trimBlankLines(lines []string) string {
	start, end := 0, len(lines)

	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}

	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	return strings.Join(lines[start:end], "\n")
}

// renderBody lays chunks out canonically: one blank line after the begin
// marker, between chunks and before the end marker.
func renderBody(chunks []chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.text
	}

	return "\n" + strings.Join(texts, "\n\n") + "\n\n"
}
