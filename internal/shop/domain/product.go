package domain

import "time"

type ProductType string

const (
	ProductStandard     ProductType = "standard"
	ProductConfigurable ProductType = "configurable"
	ProductVariantBased ProductType = "variant_based"
)

// Valid reports whether t is a known product type.
func (t ProductType) Valid() bool {
	switch t {
	case ProductStandard, ProductConfigurable, ProductVariantBased:
		return true
	}
	return false
}

type ProductSortBy string

const (
	SortByCreatedAt ProductSortBy = "created_at"
	SortByPrice     ProductSortBy = "price"
	SortByName      ProductSortBy = "name"
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// ProductQuery is a validated catalog listing request.
type ProductQuery struct {
	Page        int
	Size        int
	LanguageISO string
	SortBy      ProductSortBy
	SortOrder   SortOrder
	CategoryID  *int
	TagIDs      []int
}

// Offset is the number of rows skipped before this page.
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.Size
}

type Category struct {
	ID          int
	Name        string
	Color       string
	Description *string
}

// ProductListItem is one row of a catalog page, translated to the requested language.
type ProductListItem struct {
	ID                   int
	Name                 string
	Description          string
	Type                 ProductType
	Price                *float64
	BasePrice            *float64
	ImageURL             *string
	PreparationTimeHours int
	MinOrderHours        int
	ServingInfo          *string
	IsCustomizable       bool
	CreatedAt            time.Time
	Category             Category
	HasVariants          bool
	DefaultVariantID     *int
	VariantCount         int
	AttributeCount       int
	TagCount             int
	ImageCount           int
}

type Pagination struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

// NewPagination derives page counts from the total number of matching rows.
func NewPagination(page, size, total int) Pagination {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Pagination{
		CurrentPage: page,
		PageSize:    size,
		TotalItems:  total,
		TotalPages:  pages,
		HasNext:     page < pages,
		HasPrevious: page > 1 && total > 0,
	}
}

type ProductPage struct {
	Products   []ProductListItem
	Pagination Pagination
}

type ProductAttribute struct {
	Name  string
	Value string
	Color *string
}

type ProductTranslation struct {
	LanguageISO string
	Name        string
	Description *string
}

// NewProduct is a validated product creation request.
type NewProduct struct {
	Name                 string
	Description          string
	Type                 ProductType
	CategoryID           int
	Price                *float64
	BasePrice            *float64
	ImageURL             *string
	PreparationTimeHours int
	MinOrderHours        int
	ServingInfo          *string
	IsCustomizable       bool
	TagIDs               []int
	Attributes           []ProductAttribute
	Translations         []ProductTranslation
}

type CreatedProduct struct {
	ID        int
	Name      string
	CreatedAt time.Time
}
