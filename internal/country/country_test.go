package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{"alpha-2 upper", "KR", "KR", true},
		{"alpha-2 lower", "kr", "KR", true},
		{"alpha-3", "KOR", "KR", true},
		{"alpha-3 lower", "usa", "US", true},
		{"full name", "South Korea", "KR", true},
		{"full name lower", "south korea", "KR", true},
		{"official name", "Republic of Korea", "KR", true},
		{"alias korea alone", "Korea", "KR", true},
		{"alias england", "England", "GB", true},
		{"alias uk", "UK", "GB", true},
		{"alias america", "America", "US", true},
		{"substring", "Zealand", "NZ", true},
		{"whitespace trimmed", "  Japan  ", "JP", true},
		{"viet nam spelling", "Viet Nam", "VN", true},
		{"unknown", "Atlantis", "", false},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Resolve(tt.token)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePrefersExactOverSubstring(t *testing.T) {
	t.Parallel()

	// "India" is an exact name; it must not resolve via substring to
	// anything else even though other names could contain it.
	got, ok := Resolve("India")
	require.True(t, ok)
	assert.Equal(t, "IN", got)
}

func TestName(t *testing.T) {
	t.Parallel()

	name, ok := Name("kr")
	require.True(t, ok)
	assert.Equal(t, "South Korea", name)

	_, ok = Name("XX")
	assert.False(t, ok)
}

func TestContinent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{"KR", "AS"},
		{"DE", "EU"},
		{"KE", "AF"},
		{"US", "NA"},
		{"BR", "SA"},
		{"AU", "OC"},
		{"AQ", "AN"},
	}
	for _, tt := range tests {
		got, ok := Continent(tt.code)
		require.True(t, ok, tt.code)
		assert.Equal(t, tt.want, got)
	}

	_, ok := Continent("XX")
	assert.False(t, ok)
}

func TestEveryRegistryEntryHasAContinent(t *testing.T) {
	t.Parallel()

	for i := range registry {
		_, ok := Continent(registry[i].alpha2)
		assert.True(t, ok, "missing continent for %s", registry[i].alpha2)
	}
}
