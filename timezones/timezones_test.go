package timezones

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, "Europe/Madrid", Lookup("ES"))
	assert.Equal(t, "America/Mexico_City", Lookup("MX"))
	assert.Equal(t, "UTC", Lookup("ZZ"))
	assert.Equal(t, "UTC", Lookup(""))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("ES"))
	assert.True(t, IsSupported("JP"))
	assert.False(t, IsSupported("ZZ"))
}

func TestCountriesSorted(t *testing.T) {
	countries := Countries()
	require.NotEmpty(t, countries)
	assert.True(t, sort.SliceIsSorted(countries, func(i, j int) bool {
		return countries[i].Code < countries[j].Code
	}))
}

func TestZonesSortedAndLoadable(t *testing.T) {
	zones := Zones()
	require.NotEmpty(t, zones)
	assert.True(t, sort.StringsAreSorted(zones))
	for _, zone := range zones {
		_, err := time.LoadLocation(zone)
		assert.NoError(t, err, "unloadable zone %s", zone)
	}
}
