package merge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = `// Tracking functions for the shop app.

package shop

import "example.com/shop/events"
`

const footer = `
// helper is hand-written and must survive every merge.
func helper() {}
`

func goFunc(name, body string) Rendered {
	return Rendered{
		Name: name,
		Text: "// " + name + " tracks an event.\nfunc " + name + "() {\n\t" + body + "\n}\n",
	}
}

func file(body string) string {
	return header + "\n" + BeginMarker + "\n" + body + EndMarker + "\n" + footer
}

func TestMerge_AddsToEmptyRegion(t *testing.T) {
	existing := file("")

	res, err := Merge([]byte(existing), []Rendered{goFunc("trackA", "a()"), goFunc("trackB", "b()")})
	require.NoError(t, err)

	assert.Equal(t, []string{"trackA", "trackB"}, res.Added)
	assert.Empty(t, res.Updated)
	assert.Empty(t, res.RemovalCandidates)
	assert.True(t, res.Changed)
	assert.False(t, res.RegionCreated)

	want := file("\n" +
		"// trackA tracks an event.\nfunc trackA() {\n\ta()\n}\n\n" +
		"// trackB tracks an event.\nfunc trackB() {\n\tb()\n}\n\n")
	assert.Equal(t, want, string(res.Content))
}

func TestMerge_Idempotent(t *testing.T) {
	funcs := []Rendered{goFunc("trackA", "a()"), goFunc("trackB", "b()")}

	first, err := Merge([]byte(file("")), funcs)
	require.NoError(t, err)

	second, err := Merge(first.Content, funcs)
	require.NoError(t, err)

	assert.False(t, second.Changed)
	assert.Empty(t, second.Added)
	assert.Empty(t, second.Updated)
	assert.Equal(t, []string{"trackA", "trackB"}, second.Unchanged)
	assert.Equal(t, string(first.Content), string(second.Content))
}

func TestMerge_UpdatesInPlaceAndKeepsRemovalCandidates(t *testing.T) {
	first, err := Merge([]byte(file("")), []Rendered{
		goFunc("trackA", "a()"),
		goFunc("trackB", "b()"),
		goFunc("trackC", "c()"),
	})
	require.NoError(t, err)

	res, err := Merge(first.Content, []Rendered{
		goFunc("trackD", "d()"),
		goFunc("trackC", "c()"),
		goFunc("trackA", "a2()"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"trackD"}, res.Added)
	assert.Equal(t, []string{"trackA"}, res.Updated)
	assert.Equal(t, []string{"trackC"}, res.Unchanged)
	assert.Equal(t, []string{"trackB"}, res.RemovalCandidates)

	content := string(res.Content)
	assert.Contains(t, content, "\ta2()")
	assert.NotContains(t, content, "\ta()\n")
	assert.Contains(t, content, "func trackB()")

	// Existing order is kept and new functions are appended.
	iA := strings.Index(content, "func trackA")
	iB := strings.Index(content, "func trackB")
	iC := strings.Index(content, "func trackC")
	iD := strings.Index(content, "func trackD")
	assert.Less(t, iA, iB)
	assert.Less(t, iB, iC)
	assert.Less(t, iC, iD)
}

func TestMerge_PreservesOutsideRegion(t *testing.T) {
	existing := file("")

	res, err := Merge([]byte(existing), []Rendered{goFunc("trackA", "a()")})
	require.NoError(t, err)

	content := string(res.Content)
	assert.True(t, strings.HasPrefix(content, header+"\n"+BeginMarker+"\n"))
	assert.True(t, strings.HasSuffix(content, EndMarker+"\n"+footer))
}

func TestMerge_KeepsOpaqueChunks(t *testing.T) {
	body := "\n// Hand-written note inside the region.\nvar note = 1\n\n" +
		"// trackA tracks an event.\nfunc trackA() {\n\ta()\n}\n\n"

	res, err := Merge([]byte(file(body)), []Rendered{goFunc("trackA", "a()"), goFunc("trackB", "b()")})
	require.NoError(t, err)

	assert.Equal(t, []string{"trackA"}, res.Unchanged)
	assert.Equal(t, []string{"trackB"}, res.Added)
	assert.Contains(t, string(res.Content), "// Hand-written note inside the region.\nvar note = 1\n\n// trackA")
}

func TestMerge_NormalizesRegionLayout(t *testing.T) {
	body := "\n\n\n// trackA tracks an event.\nfunc trackA() {\n\ta()\n}\n\n\n\n"

	res, err := Merge([]byte(file(body)), []Rendered{goFunc("trackA", "a()")})
	require.NoError(t, err)

	assert.Equal(t, []string{"trackA"}, res.Unchanged)
	assert.True(t, res.Changed)
	assert.Equal(t, file("\n// trackA tracks an event.\nfunc trackA() {\n\ta()\n}\n\n"), string(res.Content))
}

func TestMerge_NestedBracesDoNotEndBlock(t *testing.T) {
	fn := Rendered{
		Name: "trackA",
		Text: "func trackA() {\n\td := Details{\n\t\tX: 1,\n\t}\n\tuse(d)\n}",
	}

	first, err := Merge([]byte(file("")), []Rendered{fn})
	require.NoError(t, err)

	second, err := Merge(first.Content, []Rendered{fn})
	require.NoError(t, err)
	assert.Equal(t, []string{"trackA"}, second.Unchanged)
	assert.False(t, second.Changed)
}

func TestMerge_SwiftDeclarations(t *testing.T) {
	fn := Rendered{
		Name: "trackAdTap",
		Text: "static func trackAdTap() {\n    let eventDetails: EventDetails = EventDetails(\n        action: Event.Action.tap\n    )\n}",
	}

	existing := "extension EventsTracker {\n" + BeginMarker + "\n" + EndMarker + "\n}\n"

	first, err := Merge([]byte(existing), []Rendered{fn})
	require.NoError(t, err)
	assert.Equal(t, []string{"trackAdTap"}, first.Added)

	second, err := Merge(first.Content, []Rendered{fn})
	require.NoError(t, err)
	assert.Equal(t, []string{"trackAdTap"}, second.Unchanged)
	assert.False(t, second.Changed)
}

func TestMerge_CreatesRegionWhenMissing(t *testing.T) {
	existing := "package shop\n\nfunc helper() {}"

	res, err := Merge([]byte(existing), []Rendered{goFunc("trackA", "a()")})
	require.NoError(t, err)

	assert.True(t, res.RegionCreated)
	assert.Equal(t, []string{"trackA"}, res.Added)

	content := string(res.Content)
	assert.True(t, strings.HasPrefix(content, existing+"\n\n"+BeginMarker+"\n"))
	assert.True(t, strings.HasSuffix(content, "}\n\n"+EndMarker+"\n"))

	again, err := Merge(res.Content, []Rendered{goFunc("trackA", "a()")})
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.False(t, again.RegionCreated)
}

func TestMerge_EmptyFile(t *testing.T) {
	res, err := Merge(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, BeginMarker+"\n"+EndMarker+"\n", string(res.Content))
	assert.True(t, res.RegionCreated)
}

func TestMerge_MalformedRegion(t *testing.T) {
	tests := []struct {
		name     string
		existing string
	}{
		{name: "begin only", existing: BeginMarker + "\n"},
		{name: "end only", existing: EndMarker + "\n"},
		{name: "reversed", existing: EndMarker + "\n" + BeginMarker + "\n"},
		{name: "two regions", existing: file("") + file("")},
		{
			name:     "duplicate function",
			existing: file("func trackA() {\n}\n\nfunc trackA() {\n}\n"),
		},
		{
			name:     "unclosed function",
			existing: file("func trackA() {\n\ta()\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge([]byte(tt.existing), nil)
			require.ErrorIs(t, err, ErrMalformedRegion)
		})
	}
}

func TestMerge_DuplicateInput(t *testing.T) {
	_, err := Merge([]byte(file("")), []Rendered{goFunc("trackA", "a()"), goFunc("trackA", "b()")})
	require.Error(t, err)
}
