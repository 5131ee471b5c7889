package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    Duration
		wantErr bool
	}{
		{25, Duration25, false},
		{50, Duration50, false},
		{80, Duration80, false},
		{30, 0, true},
		{90, 0, true},
		{0, 0, true},
		{-25, 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.minutes)
		if tt.wantErr {
			assert.Error(t, err, "minutes=%d", tt.minutes)
			continue
		}
		require.NoError(t, err, "minutes=%d", tt.minutes)
		assert.Equal(t, tt.want, got)
	}
}

func TestDurationPrices(t *testing.T) {
	assert.Equal(t, 6, Duration25.UnitPriceEUR())
	assert.Equal(t, 12, Duration50.UnitPriceEUR())
	assert.Equal(t, 16, Duration80.UnitPriceEUR())
}

func TestDurationsCoverEveryPricedLength(t *testing.T) {
	for _, d := range Durations() {
		assert.True(t, d.Valid())
		assert.Positive(t, d.UnitPriceEUR())
	}
	assert.Len(t, Durations(), 3)
}
