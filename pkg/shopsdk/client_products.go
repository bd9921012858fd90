package shopsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (p ListProductsParams) query() string {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	if p.Language != "" {
		v.Set("lang", p.Language)
	}
	if p.CategoryID > 0 {
		v.Set("category_id", strconv.Itoa(p.CategoryID))
	}
	for _, id := range p.TagIDs {
		v.Add("tag_ids", strconv.Itoa(id))
	}
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
	}
	if p.SortOrder != "" {
		v.Set("sort_order", p.SortOrder)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (*ProductListResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/products"+params.query(), nil, "")
	if err != nil {
		return nil, err
	}

	var out ProductListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (*CreateProductResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/products", req, "")
	if err != nil {
		return nil, err
	}

	var out CreateProductResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
