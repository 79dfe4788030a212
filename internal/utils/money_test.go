package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDollarsToCents(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"whole dollars", 2500, 250000},
		{"with cents", 25.50, 2550},
		{"single dollar", 1, 100},
		{"rounds half up", 10.005, 1001},
		{"rounds repeating float", 19.99, 1999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DollarsToCents(tt.amount))
		})
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "2500.00", FormatCents(250000))
	assert.Equal(t, "25.50", FormatCents(2550))
	assert.Equal(t, "0.99", FormatCents(99))
	assert.Equal(t, "0.00", FormatCents(0))
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "2500", FormatDollars(2500))
	assert.Equal(t, "25.5", FormatDollars(25.5))
	assert.Equal(t, "1", FormatDollars(1))
}
