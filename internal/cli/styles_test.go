package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKRW(t *testing.T) {
	tests := []struct {
		want   string
		amount float64
	}{
		{want: "₩0", amount: 0},
		{want: "₩900", amount: 900},
		{want: "₩17,000", amount: 17000},
		{want: "₩1,234,567", amount: 1234567},
		{want: "₩10,000", amount: 9999.9},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatKRW(tt.amount))
	}
}

func TestFormatDDay(t *testing.T) {
	assert.Contains(t, FormatDDay(0), "D-DAY")
	assert.Equal(t, "D-3", FormatDDay(3))
}
