package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, size            int
		wantOffset, wantLimit int
	}{
		{page: 1, size: 10, wantOffset: 0, wantLimit: 10},
		{page: 3, size: 10, wantOffset: 20, wantLimit: 10},
		{page: 0, size: 0, wantOffset: 0, wantLimit: DefaultPageSize},
		{page: 2, size: 500, wantOffset: DefaultPageSize, wantLimit: DefaultPageSize},
		{page: math.MaxInt / 10, size: 20, wantOffset: math.MaxInt / 20 * 20, wantLimit: 20},
		{page: math.MaxInt, size: 100, wantOffset: math.MaxInt / 100 * 100, wantLimit: 100},
	}
	for _, tt := range tests {
		off, lim := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.wantOffset, off, "page %d", tt.page)
		assert.Equal(t, tt.wantLimit, lim)
		assert.GreaterOrEqual(t, off, 0)
	}
}

func TestParseIntDefaultAndTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("x", 7))
	assert.Equal(t, 3, ParseIntDefault("3", 7))

	assert.EqualValues(t, 0, TotalPages(0, 20))
	assert.EqualValues(t, 1, TotalPages(20, 20))
	assert.EqualValues(t, 2, TotalPages(21, 20))
}
