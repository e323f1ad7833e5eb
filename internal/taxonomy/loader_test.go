package taxonomy

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	reg, err := LoadFile(filepath.Join("testdata", "taxonomy.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Value{ID: "buyNow", Known: true}, reg.Resolve(Section, "buy_now"))
	assert.Equal(t, Value{ID: "textLink", Known: true}, reg.Resolve(Element, "text_link"))
	assert.Equal(t, Value{ID: "google", Known: true}, reg.Resolve(Label, "google"))
	assert.Equal(t, "undefined", reg.Unknown(Label))
	assert.True(t, reg.IsAdvertisementScoped("myAd", "post"))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read taxonomy file")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "bad yaml",
			yaml:    "dimensions: [",
			wantErr: "failed to parse taxonomy YAML",
		},
		{
			name: "unknown dimension",
			yaml: `
dimensions:
  region:
    eu: eu
`,
			wantErr: `unknown taxonomy dimension "region"`,
		},
		{
			name: "unknown sentinel dimension",
			yaml: `
unknown:
  region: none
dimensions: {}
`,
			wantErr: `unknown taxonomy dimension "region"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	f := File{}
	applyDefaults(&f)
	assert.Equal(t, "1", f.Version)
}
