package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"buy_now", "buynow"},
		{"buyNow", "buynow"},
		{"BuyNow", "buynow"},
		{"buy-now", "buynow"},
		{"Buy Now", "buynow"},
		{"BUY_NOW", "buynow"},
		{"Screen", "screen"},
		{" parameters", "parameters"},
		{"", ""},
		{"a", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ad", "Ad"},
		{"buyNow", "BuyNow"},
		{"buy_now", "BuyNow"},
		{"my_ad", "MyAd"},
		{"textLink", "TextLink"},
		{"aiPhotoEnhancementFollowup", "AiPhotoEnhancementFollowup"},
		{"smsValidation", "SmsValidation"},
		{"", ""},
		{"___", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Pascal(tt.input))
		})
	}
}

func TestLowerCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"response_id", "responseId"},
		{"position", "position"},
		{"Position", "position"},
		{"category_id_v2", "categoryIdV2"},
		{"_leading", "leading"},
		{"trailing_", "trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, LowerCamel(tt.input))
		})
	}
}

func TestTokenizeCamelCase(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"buyNow", []string{"buy", "Now"}},
		{"SMSCode", []string{"SMS", "Code"}},
		{"buy_now", []string{"buy", "now"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"lowercase", []string{"lowercase"}},
		{"", nil},
		{"a", []string{"a"}},
		{"AbC", []string{"Ab", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenizeCamelCase(tt.input))
		})
	}
}

func TestTokenizeIdent(t *testing.T) {
	assert.Equal(t, []string{"buy", "now"}, TokenizeIdent("buyNow"))
	assert.Equal(t, []string{"text", "link"}, TokenizeIdent("text_link"))
}
