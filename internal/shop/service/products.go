package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
	"github.com/chocomax/shop/pkg/slogx"
)

const (
	DefaultPageSize     = 12
	MaxPageSize         = 100
	DefaultLanguage     = "en"
	DefaultPrepHours    = 48
	maxHours            = 8760
	maxPrice            = 999999.99
	maxProductNameLen   = 200
	minProductNameLen   = 3
	maxDescriptionLen   = 2000
	maxServingInfoLen   = 200
	maxAttributeNameLen = 100
	maxAttributeValLen  = 200
)

var (
	languagePattern = regexp.MustCompile(`^[a-z]{2}$`)
	imageURLPattern = regexp.MustCompile(`(?i)^https?://\S+\.(jpg|jpeg|png|webp)(\?\S*)?$`)
	colorPattern    = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ListProductsRequest carries catalog query parameters as received. Nil and
// empty fields take their defaults.
type ListProductsRequest struct {
	Page       *int
	Size       *int
	Language   string
	CategoryID *int
	TagIDs     []int
	SortBy     string
	SortOrder  string
}

type CreateProductRequest struct {
	Name                 string
	Description          string
	Type                 string
	CategoryID           int
	Price                *float64
	BasePrice            *float64
	ImageURL             *string
	PreparationTimeHours *int
	MinOrderHours        *int
	ServingInfo          *string
	IsCustomizable       bool
	TagIDs               []int
	Attributes           []domain.ProductAttribute
	Translations         []domain.ProductTranslation
}

type ProductService struct {
	Store store.Store
}

// List returns one translated page of the catalog.
func (s *ProductService) List(ctx context.Context, req ListProductsRequest) (domain.ProductPage, error) {
	q, err := ValidateProductQuery(req)
	if err != nil {
		return domain.ProductPage{}, err
	}

	page, err := s.Store.Products().ListProducts(ctx, q)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list products", slog.Any("error", err))
		return domain.ProductPage{}, fmt.Errorf("list products: %w", err)
	}
	return page, nil
}

// Create validates and stores a product.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (domain.CreatedProduct, error) {
	log := slogx.FromContext(ctx)

	p, err := ValidateNewProduct(req)
	if err != nil {
		return domain.CreatedProduct{}, err
	}

	var created domain.CreatedProduct
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		created, err = tx.Products().CreateProduct(ctx, p)
		return err
	})
	switch {
	case err == nil:
	case errors.Is(err, store.ErrAlreadyExists):
		log.Warn("duplicate product name", slog.String("name", p.Name))
		return domain.CreatedProduct{}, ErrProductConflict
	case errors.Is(err, store.ErrNotFound):
		return domain.CreatedProduct{}, invalid("product", "unknown category, tag or language")
	default:
		log.Error("failed to create product", slog.Any("error", err))
		return domain.CreatedProduct{}, fmt.Errorf("create product: %w", err)
	}

	log.Info("product created", slog.Int("product_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// ValidateProductQuery applies defaults and bounds to a catalog query.
func ValidateProductQuery(req ListProductsRequest) (domain.ProductQuery, error) {
	q := domain.ProductQuery{
		Page:        1,
		Size:        DefaultPageSize,
		LanguageISO: DefaultLanguage,
		SortBy:      domain.SortByCreatedAt,
		SortOrder:   domain.SortDesc,
	}

	if req.Page != nil {
		if *req.Page < 1 {
			return q, invalid("page", "must be at least 1")
		}
		q.Page = *req.Page
	}
	if req.Size != nil {
		if *req.Size < 1 || *req.Size > MaxPageSize {
			return q, invalid("size", "must be between 1 and %d", MaxPageSize)
		}
		q.Size = *req.Size
	}
	if req.Language != "" {
		if !languagePattern.MatchString(req.Language) {
			return q, invalid("lang", "must be a two letter lowercase code")
		}
		q.LanguageISO = req.Language
	}
	if req.CategoryID != nil {
		if *req.CategoryID < 1 {
			return q, invalid("category_id", "must be at least 1")
		}
		q.CategoryID = req.CategoryID
	}
	for _, id := range req.TagIDs {
		if id < 1 {
			return q, invalid("tag_ids", "must be positive")
		}
	}
	q.TagIDs = req.TagIDs

	if req.SortBy != "" {
		switch by := domain.ProductSortBy(req.SortBy); by {
		case domain.SortByCreatedAt, domain.SortByPrice, domain.SortByName:
			q.SortBy = by
		default:
			return q, invalid("sort_by", "must be one of created_at, price, name")
		}
	}
	if req.SortOrder != "" {
		switch order := domain.SortOrder(strings.ToUpper(req.SortOrder)); order {
		case domain.SortAsc, domain.SortDesc:
			q.SortOrder = order
		default:
			return q, invalid("sort_order", "must be ASC or DESC")
		}
	}
	return q, nil
}

// ValidateNewProduct checks a creation request. Configurable products are
// priced by base_price and the others by price; the unused field is cleared.
func ValidateNewProduct(req CreateProductRequest) (domain.NewProduct, error) {
	p := domain.NewProduct{
		Name:                 strings.TrimSpace(req.Name),
		Description:          strings.TrimSpace(req.Description),
		Type:                 domain.ProductType(req.Type),
		CategoryID:           req.CategoryID,
		Price:                req.Price,
		BasePrice:            req.BasePrice,
		ImageURL:             req.ImageURL,
		PreparationTimeHours: DefaultPrepHours,
		MinOrderHours:        DefaultPrepHours,
		ServingInfo:          req.ServingInfo,
		IsCustomizable:       req.IsCustomizable,
		TagIDs:               req.TagIDs,
		Attributes:           req.Attributes,
		Translations:         req.Translations,
	}

	if err := checkProductName("name", p.Name); err != nil {
		return p, err
	}
	if n := utf8.RuneCountInString(p.Description); n < 1 || n > maxDescriptionLen {
		return p, invalid("description", "must be 1 to %d characters", maxDescriptionLen)
	}
	if !p.Type.Valid() {
		return p, invalid("type", "must be one of standard, configurable, variant_based")
	}
	if p.CategoryID < 1 {
		return p, invalid("category_id", "must be at least 1")
	}

	if p.Type == domain.ProductConfigurable {
		if p.BasePrice == nil {
			return p, invalid("base_price", "is required for configurable products")
		}
		p.Price = nil
	} else {
		if p.Price == nil {
			return p, invalid("price", "is required for %s products", p.Type)
		}
		p.BasePrice = nil
	}
	if err := checkPrice("price", p.Price); err != nil {
		return p, err
	}
	if err := checkPrice("base_price", p.BasePrice); err != nil {
		return p, err
	}

	if p.ImageURL != nil && !imageURLPattern.MatchString(*p.ImageURL) {
		return p, invalid("image_url", "must be an http(s) URL to a jpg, jpeg, png or webp image")
	}
	if req.PreparationTimeHours != nil {
		p.PreparationTimeHours = *req.PreparationTimeHours
	}
	if req.MinOrderHours != nil {
		p.MinOrderHours = *req.MinOrderHours
	}
	if p.PreparationTimeHours < 0 || p.PreparationTimeHours > maxHours {
		return p, invalid("preparation_time_hours", "must be between 0 and %d", maxHours)
	}
	if p.MinOrderHours < 0 || p.MinOrderHours > maxHours {
		return p, invalid("min_order_hours", "must be between 0 and %d", maxHours)
	}
	if p.ServingInfo != nil && utf8.RuneCountInString(*p.ServingInfo) > maxServingInfoLen {
		return p, invalid("serving_info", "must be at most %d characters", maxServingInfoLen)
	}

	for _, id := range p.TagIDs {
		if id < 1 {
			return p, invalid("tag_ids", "must be positive")
		}
	}
	for i, a := range p.Attributes {
		if n := utf8.RuneCountInString(a.Name); n < 1 || n > maxAttributeNameLen {
			return p, invalid(fmt.Sprintf("attributes[%d].name", i), "must be 1 to %d characters", maxAttributeNameLen)
		}
		if n := utf8.RuneCountInString(a.Value); n < 1 || n > maxAttributeValLen {
			return p, invalid(fmt.Sprintf("attributes[%d].value", i), "must be 1 to %d characters", maxAttributeValLen)
		}
		if a.Color != nil && !colorPattern.MatchString(*a.Color) {
			return p, invalid(fmt.Sprintf("attributes[%d].color", i), "must be #RRGGBB")
		}
	}
	for i, t := range p.Translations {
		if !languagePattern.MatchString(t.LanguageISO) {
			return p, invalid(fmt.Sprintf("translations[%d].language_iso", i), "must be a two letter lowercase code")
		}
		if err := checkProductName(fmt.Sprintf("translations[%d].name", i), t.Name); err != nil {
			return p, err
		}
		if t.Description != nil && utf8.RuneCountInString(*t.Description) > maxDescriptionLen {
			return p, invalid(fmt.Sprintf("translations[%d].description", i), "must be at most %d characters", maxDescriptionLen)
		}
	}
	return p, nil
}

func checkProductName(field, name string) error {
	if n := utf8.RuneCountInString(name); n < minProductNameLen || n > maxProductNameLen {
		return invalid(field, "must be %d to %d characters", minProductNameLen, maxProductNameLen)
	}
	if strings.ContainsAny(name, `<>'"`) {
		return invalid(field, "must not contain <, >, ' or \"")
	}
	return nil
}

func checkPrice(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || *v < 0 || *v > maxPrice {
		return invalid(field, "must be between 0 and %.2f", maxPrice)
	}
	return nil
}
