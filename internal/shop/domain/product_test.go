package domain_test

import (
	"testing"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name              string
		page, size, total int
		want              domain.Pagination
	}{
		{
			name: "empty result",
			page: 1, size: 12, total: 0,
			want: domain.Pagination{CurrentPage: 1, PageSize: 12},
		},
		{
			name: "single partial page",
			page: 1, size: 12, total: 5,
			want: domain.Pagination{CurrentPage: 1, PageSize: 12, TotalItems: 5, TotalPages: 1},
		},
		{
			name: "middle page",
			page: 2, size: 10, total: 25,
			want: domain.Pagination{CurrentPage: 2, PageSize: 10, TotalItems: 25, TotalPages: 3, HasNext: true, HasPrevious: true},
		},
		{
			name: "last page exact fit",
			page: 3, size: 10, total: 30,
			want: domain.Pagination{CurrentPage: 3, PageSize: 10, TotalItems: 30, TotalPages: 3, HasPrevious: true},
		},
		{
			name: "page past the end",
			page: 9, size: 10, total: 30,
			want: domain.Pagination{CurrentPage: 9, PageSize: 10, TotalItems: 30, TotalPages: 3, HasPrevious: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, domain.NewPagination(tt.page, tt.size, tt.total))
		})
	}
}

func TestProductQueryOffset(t *testing.T) {
	require.Equal(t, 0, domain.ProductQuery{Page: 1, Size: 12}.Offset())
	require.Equal(t, 24, domain.ProductQuery{Page: 3, Size: 12}.Offset())
}

func TestProductTypeValid(t *testing.T) {
	require.True(t, domain.ProductStandard.Valid())
	require.True(t, domain.ProductConfigurable.Valid())
	require.True(t, domain.ProductVariantBased.Valid())
	require.False(t, domain.ProductType("bundle").Valid())
}

func TestFormatHandle(t *testing.T) {
	require.Equal(t, "alice#0042", domain.FormatHandle("alice", 42))
	require.Equal(t, "bob#9999", domain.Profile{Username: "bob", Discriminator: 9999}.Handle())
}
