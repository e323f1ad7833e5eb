package merge

import (
	"fmt"
	"strings"
)

// Rendered is the text of one generated function, keyed by its declared name.
type Rendered struct {
	Name string
	Text string
}

// Result is the outcome of a merge. The name lists are in region order.
type Result struct {
	// Content is the complete new file content.
	Content []byte

	Added             []string
	Updated           []string
	Unchanged         []string
	RemovalCandidates []string

	// Changed is false when Content equals the existing bytes.
	Changed bool
	// RegionCreated is true when the file had no markers and the region was
	// appended at the end.
	RegionCreated bool
}

// Merge splices funcs into the managed region of existing. It is pure: the
// same inputs always give the same Result.
func Merge(existing []byte, funcs []Rendered) (Result, error) {
	content := string(existing)

	r, err := locate(content)
	if err != nil {
		return Result{}, err
	}

	var res Result

	if !r.found {
		content, r = appendRegion(content)
		res.RegionCreated = true
	}

	chunks, err := parseChunks(content[r.bodyStart:r.bodyEnd])
	if err != nil {
		return Result{}, err
	}

	fresh := make(map[string]string, len(funcs))

	for _, fn := range funcs {
		if _, dup := fresh[fn.Name]; dup {
			return Result{}, fmt.Errorf("merge: function %s rendered twice", fn.Name)
		}

		fresh[fn.Name] = strings.TrimRight(fn.Text, "\n")
	}

	existingNames := make(map[string]bool, len(chunks))

	for i, c := range chunks {
		if !c.isFunc() {
			continue
		}

		existingNames[c.name] = true

		text, ok := fresh[c.name]

		switch {
		case !ok:
			res.RemovalCandidates = append(res.RemovalCandidates, c.name)
		case text == c.text:
			res.Unchanged = append(res.Unchanged, c.name)
		default:
			chunks[i].text = text
			res.Updated = append(res.Updated, c.name)
		}
	}

	for _, fn := range funcs {
		if existingNames[fn.Name] {
			continue
		}

		chunks = append(chunks, chunk{name: fn.Name, text: fresh[fn.Name]})
		res.Added = append(res.Added, fn.Name)
	}

	var sb strings.Builder

	sb.Grow(len(content) + 256)
	sb.WriteString(content[:r.bodyStart])
	sb.WriteString(renderBody(chunks))
	sb.WriteString(content[r.bodyEnd:])

	res.Content = []byte(sb.String())
	res.Changed = sb.String() != string(existing)

	return res, nil
}

// appendRegion adds an empty managed region at the end of content.
func appendRegion(content string) (string, region) {
	var sb strings.Builder

	sb.WriteString(content)

	if content != "" {
		if !strings.HasSuffix(content, "\n") {
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
	}

	sb.WriteString(BeginMarker)
	sb.WriteString("\n")

	bodyStart := sb.Len()

	sb.WriteString(EndMarker)
	sb.WriteString("\n")

	return sb.String(), region{
		bodyStart: bodyStart,
		bodyEnd:   bodyStart,
		found:     true,
	}
}
