package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chocomax/shop/internal/shop/domain"
)

func ptr[T any](v T) *T { return &v }

func validProduct() CreateProductRequest {
	return CreateProductRequest{
		Name:        "Dark Truffle Cake",
		Description: "Seventy percent cocoa layered cake.",
		Type:        string(domain.ProductStandard),
		CategoryID:  1,
		Price:       ptr(24.5),
		ImageURL:    ptr("https://cdn.example.com/cake.webp?w=400"),
		TagIDs:      []int{1, 3},
		Attributes: []domain.ProductAttribute{
			{Name: "Weight", Value: "800g"},
			{Name: "Glaze", Value: "Ruby", Color: ptr("#E0115F")},
		},
		Translations: []domain.ProductTranslation{
			{LanguageISO: "fr", Name: "Gâteau truffe noire", Description: ptr("Gâteau au cacao.")},
		},
	}
}

func TestValidateNewProduct(t *testing.T) {
	t.Run("defaults and clears the unused price", func(t *testing.T) {
		req := validProduct()
		req.BasePrice = ptr(10.0)

		p, err := ValidateNewProduct(req)
		require.NoError(t, err)
		require.Equal(t, DefaultPrepHours, p.PreparationTimeHours)
		require.Equal(t, DefaultPrepHours, p.MinOrderHours)
		require.Nil(t, p.BasePrice)
		require.Equal(t, 24.5, *p.Price)
	})

	t.Run("configurable products use base price", func(t *testing.T) {
		req := validProduct()
		req.Type = string(domain.ProductConfigurable)
		req.BasePrice = ptr(30.0)

		p, err := ValidateNewProduct(req)
		require.NoError(t, err)
		require.Nil(t, p.Price)
		require.Equal(t, 30.0, *p.BasePrice)
	})

	tests := []struct {
		name   string
		mutate func(r *CreateProductRequest)
		field  string
	}{
		{"name too short", func(r *CreateProductRequest) { r.Name = "ab" }, "name"},
		{"name too long", func(r *CreateProductRequest) { r.Name = strings.Repeat("x", 201) }, "name"},
		{"name with markup", func(r *CreateProductRequest) { r.Name = "<b>Cake</b>" }, "name"},
		{"empty description", func(r *CreateProductRequest) { r.Description = " " }, "description"},
		{"unknown type", func(r *CreateProductRequest) { r.Type = "bundle" }, "type"},
		{"category zero", func(r *CreateProductRequest) { r.CategoryID = 0 }, "category_id"},
		{"standard without price", func(r *CreateProductRequest) { r.Price = nil }, "price"},
		{"configurable without base price", func(r *CreateProductRequest) { r.Type = "configurable" }, "base_price"},
		{"negative price", func(r *CreateProductRequest) { r.Price = ptr(-1.0) }, "price"},
		{"price too high", func(r *CreateProductRequest) { r.Price = ptr(1000000.0) }, "price"},
		{"image not an image", func(r *CreateProductRequest) { r.ImageURL = ptr("https://cdn.example.com/cake.gif") }, "image_url"},
		{"image not http", func(r *CreateProductRequest) { r.ImageURL = ptr("ftp://cdn.example.com/cake.png") }, "image_url"},
		{"preparation too long", func(r *CreateProductRequest) { r.PreparationTimeHours = ptr(8761) }, "preparation_time_hours"},
		{"min order negative", func(r *CreateProductRequest) { r.MinOrderHours = ptr(-1) }, "min_order_hours"},
		{"serving info too long", func(r *CreateProductRequest) { r.ServingInfo = ptr(strings.Repeat("s", 201)) }, "serving_info"},
		{"tag zero", func(r *CreateProductRequest) { r.TagIDs = []int{0} }, "tag_ids"},
		{"attribute without value", func(r *CreateProductRequest) { r.Attributes[0].Value = "" }, "attributes[0].value"},
		{"attribute bad colour", func(r *CreateProductRequest) { r.Attributes[1].Color = ptr("red") }, "attributes[1].color"},
		{"translation bad iso", func(r *CreateProductRequest) { r.Translations[0].LanguageISO = "FRA" }, "translations[0].language_iso"},
		{"translation short name", func(r *CreateProductRequest) { r.Translations[0].Name = "G" }, "translations[0].name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validProduct()
			tt.mutate(&req)

			_, err := ValidateNewProduct(req)
			require.ErrorIs(t, err, ErrInvalidRequest)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateProductQuery(t *testing.T) {
	q, err := ValidateProductQuery(ListProductsRequest{})
	require.NoError(t, err)
	require.Equal(t, domain.ProductQuery{
		Page:        1,
		Size:        DefaultPageSize,
		LanguageISO: DefaultLanguage,
		SortBy:      domain.SortByCreatedAt,
		SortOrder:   domain.SortDesc,
	}, q)

	q, err = ValidateProductQuery(ListProductsRequest{
		Page: ptr(3), Size: ptr(100), Language: "nl", CategoryID: ptr(2),
		TagIDs: []int{1}, SortBy: "price", SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Equal(t, 3, q.Page)
	require.Equal(t, 100, q.Size)
	require.Equal(t, "nl", q.LanguageISO)
	require.Equal(t, 2, *q.CategoryID)
	require.Equal(t, domain.SortByPrice, q.SortBy)
	require.Equal(t, domain.SortAsc, q.SortOrder)

	bad := []ListProductsRequest{
		{Page: ptr(0)},
		{Size: ptr(0)},
		{Size: ptr(101)},
		{Language: "EN"},
		{Language: "eng"},
		{CategoryID: ptr(0)},
		{TagIDs: []int{-1}},
		{SortBy: "popularity"},
		{SortOrder: "sideways"},
	}
	for _, req := range bad {
		_, err := ValidateProductQuery(req)
		require.ErrorIs(t, err, ErrInvalidRequest, "%+v", req)
	}
}

func TestProductService(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	t.Run("empty catalog", func(t *testing.T) {
		page, err := env.products.List(ctx, ListProductsRequest{})
		require.NoError(t, err)
		require.Empty(t, page.Products)
		require.Equal(t, 0, page.Pagination.TotalItems)
		require.Equal(t, 0, page.Pagination.TotalPages)
	})

	created, err := env.products.Create(ctx, validProduct())
	require.NoError(t, err)
	require.Positive(t, created.ID)
	require.Equal(t, "Dark Truffle Cake", created.Name)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := env.products.Create(ctx, validProduct())
		require.ErrorIs(t, err, ErrProductConflict)
	})

	t.Run("unknown category is invalid", func(t *testing.T) {
		req := validProduct()
		req.Name = "Orphan Praline"
		req.CategoryID = 999
		_, err := env.products.Create(ctx, req)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("unknown translation language is invalid", func(t *testing.T) {
		req := validProduct()
		req.Name = "Polyglot Bar"
		req.Translations[0].LanguageISO = "xx"
		_, err := env.products.Create(ctx, req)
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("lists translated products", func(t *testing.T) {
		page, err := env.products.List(ctx, ListProductsRequest{Language: "fr"})
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		require.Equal(t, "Gâteau truffe noire", page.Products[0].Name)
		require.Equal(t, 2, page.Products[0].AttributeCount)
		require.Equal(t, 2, page.Products[0].TagCount)
		require.Equal(t, 1, page.Pagination.TotalItems)

		page, err = env.products.List(ctx, ListProductsRequest{})
		require.NoError(t, err)
		require.Equal(t, "Dark Truffle Cake", page.Products[0].Name)
	})

	t.Run("invalid query", func(t *testing.T) {
		_, err := env.products.List(ctx, ListProductsRequest{SortBy: "random"})
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}
