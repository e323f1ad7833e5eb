package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() Spec {
	return Spec{
		Entries: map[Dimension]map[string]string{
			Screen:    {"ad": "ad", "my_ad": "myAd"},
			Component: {"cart": "cart", "post": "post"},
			Section:   {"buy_now": "buyNow"},
			Element:   {"button": "button"},
			Action:    {"tap": "tap", "view": "view"},
		},
		AdvertisementScoped: []ScopedPair{{Screen: "my_ad", Component: "post"}},
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg, err := New(testSpec())
	require.NoError(t, err)

	tests := []struct {
		name string
		dim  Dimension
		raw  string
		want Value
	}{
		{name: "exact", dim: Screen, raw: "my_ad", want: Value{ID: "myAd", Known: true}},
		{name: "case sensitive", dim: Screen, raw: "My_Ad", want: Value{ID: "unknown", Known: false}},
		{name: "canonical is not raw", dim: Section, raw: "buyNow", want: Value{ID: "unknown", Known: false}},
		{name: "blank", dim: Element, raw: "", want: Value{ID: "unknown", Known: false}},
		{name: "label sentinel", dim: Label, raw: "google", want: Value{ID: "undefined", Known: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Resolve(tt.dim, tt.raw))
		})
	}
}

func TestRegistry_UnknownOverride(t *testing.T) {
	spec := testSpec()
	spec.Unknown = map[Dimension]string{Section: "none"}

	reg, err := New(spec)
	require.NoError(t, err)

	assert.Equal(t, "none", reg.Unknown(Section))
	assert.True(t, reg.IsUnknown(Section, "none"))
	assert.Equal(t, "unknown", reg.Unknown(Screen))
	assert.Equal(t, "undefined", reg.Unknown(Label))
}

func TestRegistry_AdvertisementScoped(t *testing.T) {
	reg, err := New(testSpec())
	require.NoError(t, err)

	assert.True(t, reg.IsAdvertisementScoped("myAd", "post"))
	assert.False(t, reg.IsAdvertisementScoped("ad", "post"))
}

func TestRegistry_ValuesIsACopy(t *testing.T) {
	reg, err := New(testSpec())
	require.NoError(t, err)

	values := reg.Values(Screen)
	require.Equal(t, []string{"ad", "my_ad"}, values)

	values[0] = "mutated"
	assert.Equal(t, []string{"ad", "my_ad"}, reg.Values(Screen))
	assert.Equal(t, 2, reg.Len(Screen))
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
		want   error
	}{
		{
			name:   "canonical not an identifier",
			mutate: func(s *Spec) { s.Entries[Screen]["bad"] = "my-ad" },
			want:   ErrInvalidIdentifier,
		},
		{
			name:   "canonical equals sentinel",
			mutate: func(s *Spec) { s.Entries[Action]["none"] = "unknown" },
			want:   ErrSentinelCollision,
		},
		{
			name:   "scope references unknown screen",
			mutate: func(s *Spec) { s.AdvertisementScoped = append(s.AdvertisementScoped, ScopedPair{Screen: "nope", Component: "cart"}) },
			want:   ErrUnknownScopedValue,
		},
		{
			name:   "bad sentinel",
			mutate: func(s *Spec) { s.Unknown = map[Dimension]string{Screen: "not valid"} },
			want:   ErrInvalidIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			tt.mutate(&spec)

			_, err := New(spec)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseDimension(t *testing.T) {
	for _, d := range Dimensions() {
		got, err := ParseDimension(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDimension("region")
	require.Error(t, err)
	assert.Equal(t, "Dimension(9)", Dimension(9).String())
}
