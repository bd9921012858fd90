//go:build e2e

package shop_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chocomax/shop/pkg/shopsdk"
)

func TestCatalog(t *testing.T) {
	baseURL, cleanup := setupShopContainer(t)
	defer cleanup()

	client := shopsdk.NewClient(baseURL)
	ctx := t.Context()

	price := 9.5
	created, err := client.CreateProduct(ctx, shopsdk.CreateProductRequest{
		Name:        "Hazelnut Praline Box",
		Description: "Twelve hand made pralines.",
		Type:        "standard",
		CategoryID:  2,
		Price:       &price,
	})
	require.NoError(t, err)
	require.Equal(t, "Hazelnut Praline Box", created.ProductName)

	page, err := client.ListProducts(ctx, shopsdk.ListProductsParams{CategoryID: 2})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, created.ProductID, page.Products[0].ID)
	require.Equal(t, 48, page.Products[0].PreparationTimeHours)

	_, err = client.ListProducts(ctx, shopsdk.ListProductsParams{Size: 500})
	assertStatus(t, err, http.StatusUnprocessableEntity)
}
