package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	known := []string{"home", "cart", "chat_list", "my_ad", "my_profile"}

	tests := []struct {
		name  string
		raw   string
		limit int
		want  []string
	}{
		{name: "typo", raw: "hme", limit: 3, want: []string{"home"}},
		{name: "separator difference", raw: "chatList", limit: 3, want: []string{"chat_list"}},
		{name: "nothing close", raw: "zzzzzz", limit: 3, want: []string{}},
		{name: "empty raw", raw: "", limit: 3, want: nil},
		{name: "zero limit", raw: "home", limit: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.raw, known, tt.limit))
		})
	}
}

func TestRank_TieBreaksByValue(t *testing.T) {
	ranked := Rank("ab", []string{"ac", "aa"}, 0)

	assert.Equal(t, CandidateList{
		{Value: "aa", Score: 0.5},
		{Value: "ac", Score: 0.5},
	}, ranked)
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "", b: "", want: 0},
		{a: "", b: "tap", want: 3},
		{a: "view", b: "", want: 4},
		{a: "kitten", b: "sitting", want: 3},
		{a: "banner", b: "baner", want: 1},
		{a: "héme", b: "home", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, editDistance([]rune(tt.a), []rune(tt.b)))
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, similarity("buy_now", "buyNow"), 1e-9)
	assert.InDelta(t, 1.0, similarity("", ""), 1e-9)
	assert.InDelta(t, 0.75, similarity("hme", "home"), 1e-9)
	assert.Less(t, similarity("button", "screen"), DefaultSuggestThreshold)
}
