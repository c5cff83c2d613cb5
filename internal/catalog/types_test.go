package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNext(t *testing.T) {
	current := Cursor{Offset: 0, Limit: 20}

	tests := []struct {
		name    string
		next    *string
		want    *Cursor
		wantErr bool
	}{
		{"nil", nil, nil, false},
		{"empty", strPtr(" "), nil, false},
		{"literal null", strPtr("null"), nil, false},
		{"full url", strPtr("https://pokeapi.co/api/v2/pokemon?offset=20&limit=20"), &Cursor{Offset: 20, Limit: 20}, false},
		{"bare query", strPtr("offset=1"), &Cursor{Offset: 1, Limit: 20}, false},
		{"no offset advances by limit", strPtr("https://example.test/list?page=2"), &Cursor{Offset: 20, Limit: 20}, false},
		{"bad offset", strPtr("offset=x"), nil, true},
		{"bad limit", strPtr("offset=20&limit=0"), nil, true},
		{"does not advance", strPtr("offset=0"), &Cursor{Offset: 0, Limit: 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNext(tt.next, current)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesFilter(t *testing.T) {
	assert.True(t, matchesFilter("Charizard", "char"))
	assert.True(t, matchesFilter("pikachu", ""))
	assert.True(t, matchesFilter("pikachu", "  CHU "))
	assert.False(t, matchesFilter("bulbasaur", "char"))
}

func TestDetailResponseSkipsBlankNames(t *testing.T) {
	var payload detailResponse
	require.NoError(t, decodeJSON([]byte(`{
		"height": 17, "weight": 905,
		"abilities": [{"ability": {"name": "blaze"}}, {"ability": {"name": ""}}],
		"types": [{"type": {"name": "fire"}}, {"type": {"name": "flying"}}]
	}`), &payload, "test"))

	d := payload.toDetail()
	assert.Equal(t, 17, d.HeightDecimetres)
	assert.Equal(t, 905, d.WeightHectograms)
	assert.Equal(t, []string{"blaze"}, d.Abilities)
	assert.Equal(t, []string{"fire", "flying"}, d.Types)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, KindUnknown, Kind(assert.AnError))
	assert.Equal(t, KindNetwork, Kind(&NetworkError{URL: "u", Err: assert.AnError}))
	assert.Equal(t, KindUpstream, Kind(&UpstreamError{URL: "u", StatusCode: 503}))
	assert.Equal(t, KindParse, Kind(&ParseError{URL: "u", Err: assert.AnError}))
}

func TestCursorString(t *testing.T) {
	assert.Equal(t, "offset=40&limit=20", Cursor{Offset: 40, Limit: 20}.String())
}
