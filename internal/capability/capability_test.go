package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in      string
		want    Family
		wantErr bool
	}{
		{"", FamilyUnknown, false},
		{"gecko", FamilyGecko, false},
		{" WebKit ", FamilyWebKit, false},
		{"IE", FamilyIE, false},
		{"opera", FamilyOpera, false},
		{"blink", FamilyUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFamily(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupportsContentLoaded(t *testing.T) {
	tests := []struct {
		name  string
		probe Probe
		want  bool
	}{
		{"nil", nil, false},
		{"gecko", Static{Family: FamilyGecko}, true},
		{"old webkit", Static{Family: FamilyWebKit, Engine: 525.12}, false},
		{"webkit threshold", Static{Family: FamilyWebKit, Engine: 525.13}, true},
		{"old opera", Static{Family: FamilyOpera, Browser: 8.5}, false},
		{"opera 9", Static{Family: FamilyOpera, Browser: 9}, true},
		{"ie", Static{Family: FamilyIE, Browser: 8}, false},
		{"unknown", Static{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SupportsContentLoaded(tt.probe))
		})
	}
}

func TestIsGecko(t *testing.T) {
	assert.True(t, IsGecko(Standard()))
	assert.False(t, IsGecko(Static{Family: FamilyWebKit}))
	assert.False(t, IsGecko(nil))
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "unknown", FamilyUnknown.String())
	assert.Equal(t, "gecko", FamilyGecko.String())
	assert.Len(t, Families(), 4)
}
