package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page falls back to first", 0, 10, 0, 10},
		{"negative page falls back to first", -5, 10, 0, 10},
		{"zero size falls back to default", 2, 0, DefaultPageSize, DefaultPageSize},
		{"oversized page size is capped", 1, MaxPageSize + 1, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			require.Equal(t, tt.wantOffset, offset)
			require.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	require.Equal(t, 2, info.CurrentPage)
	require.Equal(t, 3, info.TotalPages)
	require.Equal(t, 10, info.PageSize)
	require.Equal(t, int64(25), info.TotalItems)
}

func TestNewPaginationInfo_EmptyResult(t *testing.T) {
	info := NewPaginationInfo(0, 1, 10)
	require.Equal(t, 1, info.CurrentPage)
	require.Equal(t, 1, info.TotalPages)
}

func TestNewPaginationInfo_PageBeyondEnd(t *testing.T) {
	info := NewPaginationInfo(5, 9, 10)
	require.Equal(t, 1, info.CurrentPage)
	require.Equal(t, 1, info.TotalPages)
}

func TestCalculateSliceIndices(t *testing.T) {
	start, end := CalculateSliceIndices(2, 10, 25)
	require.Equal(t, 10, start)
	require.Equal(t, 20, end)

	start, end = CalculateSliceIndices(4, 10, 25)
	require.Equal(t, 25, start)
	require.Equal(t, 25, end)
}
