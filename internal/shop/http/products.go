package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/service"
	"github.com/chocomax/shop/pkg/httpx"
	"github.com/chocomax/shop/pkg/shopsdk"
)

type ProductsHandler struct {
	ProductService *service.ProductService
}

// HandleList godoc
//
//	@Summary		List products
//	@Description	Paginated catalog, translated to lang when a translation exists.
//	@Tags			Products
//	@Produce		json
//	@Param			page		query		int		false	"Page number"			default(1)	minimum(1)
//	@Param			size		query		int		false	"Page size"				default(12)	minimum(1)	maximum(100)
//	@Param			lang		query		string	false	"Language ISO code"		default(en)
//	@Param			category_id	query		int		false	"Category filter"
//	@Param			tag_ids		query		[]int	false	"Tag filter, any match"	collectionFormat(multi)
//	@Param			sort_by		query		string	false	"Sort field"			Enums(created_at, price, name)	default(created_at)
//	@Param			sort_order	query		string	false	"Sort direction"		Enums(ASC, DESC)				default(DESC)
//	@Success		200			{object}	shopsdk.ProductListResponse
//	@Failure		422			{object}	shopsdk.ErrorResponse	"Invalid query"
//	@Failure		500			{object}	shopsdk.ErrorResponse	"Internal error"
//	@Router			/api/v1/products [get].
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := parseListQuery(r.URL.Query())
	if err != nil {
		shopsdk.ErrValidation.WithDescription(err.Error()).WriteError(w)
		return
	}

	page, err := h.ProductService.List(ctx, req)
	if err != nil {
		writeProductError(w, r, err)
		return
	}

	out := shopsdk.ProductListResponse{
		Products: make([]shopsdk.Product, 0, len(page.Products)),
		Pagination: shopsdk.PaginationInfo{
			CurrentPage: page.Pagination.CurrentPage,
			PageSize:    page.Pagination.PageSize,
			TotalItems:  page.Pagination.TotalItems,
			TotalPages:  page.Pagination.TotalPages,
			HasNext:     page.Pagination.HasNext,
			HasPrevious: page.Pagination.HasPrevious,
		},
	}
	for _, p := range page.Products {
		out.Products = append(out.Products, productResponse(p))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create a product
//	@Description	Configurable products are priced by base_price, the other types by price.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.CreateProductRequest	true	"Product"
//	@Success		201		{object}	shopsdk.CreateProductResponse
//	@Failure		400		{object}	shopsdk.ErrorResponse	"Malformed JSON"
//	@Failure		409		{object}	shopsdk.ErrorResponse	"Product name already exists"
//	@Failure		422		{object}	shopsdk.ErrorResponse	"Validation failed"
//	@Failure		500		{object}	shopsdk.ErrorResponse	"Internal error"
//	@Router			/api/v1/products [post].
func (h *ProductsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req shopsdk.CreateProductRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadJSON(w, err)
		return
	}

	created, err := h.ProductService.Create(ctx, newProductRequest(req))
	if err != nil {
		writeProductError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, shopsdk.CreateProductResponse{
		ProductID:   created.ID,
		ProductName: created.Name,
		Message:     "Product created successfully",
		CreatedAt:   created.CreatedAt,
	})
}

// writeProductError reports schema violations as 422.
func writeProductError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		shopsdk.ErrValidation.WithDescription(verr.Error()).WriteError(w)
		return
	}
	writeServiceError(w, r, err)
}

func parseListQuery(q url.Values) (service.ListProductsRequest, error) {
	req := service.ListProductsRequest{
		Language:  q.Get("lang"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	var err error
	if req.Page, err = optionalInt(q, "page"); err != nil {
		return req, err
	}
	if req.Size, err = optionalInt(q, "size"); err != nil {
		return req, err
	}
	if req.CategoryID, err = optionalInt(q, "category_id"); err != nil {
		return req, err
	}
	for _, raw := range q["tag_ids"] {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("tag_ids: %q is not an integer", raw)
		}
		req.TagIDs = append(req.TagIDs, id)
	}
	return req, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not an integer", key, raw)
	}
	return &n, nil
}

func newProductRequest(req shopsdk.CreateProductRequest) service.CreateProductRequest {
	out := service.CreateProductRequest{
		Name:                 req.Name,
		Description:          req.Description,
		Type:                 req.Type,
		CategoryID:           req.CategoryID,
		Price:                req.Price,
		BasePrice:            req.BasePrice,
		ImageURL:             req.ImageURL,
		PreparationTimeHours: req.PreparationTimeHours,
		MinOrderHours:        req.MinOrderHours,
		ServingInfo:          req.ServingInfo,
		IsCustomizable:       req.IsCustomizable,
		TagIDs:               req.TagIDs,
	}
	for _, a := range req.Attributes {
		out.Attributes = append(out.Attributes, domain.ProductAttribute{
			Name: a.Name, Value: a.Value, Color: a.Color,
		})
	}
	for _, t := range req.Translations {
		out.Translations = append(out.Translations, domain.ProductTranslation{
			LanguageISO: t.LanguageISO, Name: t.Name, Description: t.Description,
		})
	}
	return out
}

func productResponse(p domain.ProductListItem) shopsdk.Product {
	return shopsdk.Product{
		ID:                   p.ID,
		Name:                 p.Name,
		Description:          p.Description,
		Type:                 string(p.Type),
		Price:                p.Price,
		BasePrice:            p.BasePrice,
		ImageURL:             p.ImageURL,
		PreparationTimeHours: p.PreparationTimeHours,
		MinOrderHours:        p.MinOrderHours,
		ServingInfo:          p.ServingInfo,
		IsCustomizable:       p.IsCustomizable,
		CreatedAt:            p.CreatedAt,
		Category: shopsdk.Category{
			ID:          p.Category.ID,
			Name:        p.Category.Name,
			Color:       p.Category.Color,
			Description: p.Category.Description,
		},
		HasVariants:      p.HasVariants,
		DefaultVariantID: p.DefaultVariantID,
		VariantCount:     p.VariantCount,
		AttributeCount:   p.AttributeCount,
		TagCount:         p.TagCount,
		ImageCount:       p.ImageCount,
	}
}
