package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/chocomax/shop/internal/shop/domain"
)

type productsRepo struct {
	db dbtx
}

type attributeParam struct {
	Name  string  `json:"name"`
	Value string  `json:"value"`
	Color *string `json:"color,omitempty"`
}

type translationParam struct {
	LanguageISO string  `json:"language_iso"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func optionalInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func (r *productsRepo) ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	tagIDs := int32s(q.TagIDs)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT count_products($1, $2)`, optionalInt(q.CategoryID), tagIDs,
	).Scan(&total); err != nil {
		return domain.ProductPage{}, err
	}

	page := domain.ProductPage{
		Products:   []domain.ProductListItem{},
		Pagination: domain.NewPagination(q.Page, q.Size, total),
	}
	if total == 0 {
		return page, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, product_name, product_description, product_type,
		       price, base_price, image_url, preparation_time_hours, min_order_hours,
		       serving_info, is_customizable, created_at,
		       category_id, category_name, category_color, category_description,
		       variant_count, default_variant_id, attribute_count, tag_count, image_count
		FROM get_products_paginated($1, $2, $3, $4, $5, $6, $7)`,
		q.Page, q.Size, q.LanguageISO, string(q.SortBy), string(q.SortOrder),
		optionalInt(q.CategoryID), tagIDs,
	)
	if err != nil {
		return domain.ProductPage{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item             domain.ProductListItem
			productType      string
			price, basePrice sql.NullFloat64
			imageURL         sql.NullString
			servingInfo      sql.NullString
			categoryDesc     sql.NullString
			defaultVariant   sql.NullInt64
		)
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &productType,
			&price, &basePrice, &imageURL, &item.PreparationTimeHours, &item.MinOrderHours,
			&servingInfo, &item.IsCustomizable, &item.CreatedAt,
			&item.Category.ID, &item.Category.Name, &item.Category.Color, &categoryDesc,
			&item.VariantCount, &defaultVariant, &item.AttributeCount, &item.TagCount, &item.ImageCount,
		)
		if err != nil {
			return domain.ProductPage{}, err
		}
		item.Type = domain.ProductType(productType)
		item.Price = mapNullFloatPtr(price)
		item.BasePrice = mapNullFloatPtr(basePrice)
		item.ImageURL = mapNullStringPtr(imageURL)
		item.ServingInfo = mapNullStringPtr(servingInfo)
		item.Category.Description = mapNullStringPtr(categoryDesc)
		item.HasVariants = item.VariantCount > 0
		if defaultVariant.Valid {
			id := int(defaultVariant.Int64)
			item.DefaultVariantID = &id
		}
		page.Products = append(page.Products, item)
	}
	if err := rows.Err(); err != nil {
		return domain.ProductPage{}, err
	}
	return page, nil
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.NewProduct) (domain.CreatedProduct, error) {
	attrs := make([]attributeParam, 0, len(p.Attributes))
	for _, a := range p.Attributes {
		attrs = append(attrs, attributeParam{Name: a.Name, Value: a.Value, Color: a.Color})
	}
	translations := make([]translationParam, 0, len(p.Translations))
	for _, t := range p.Translations {
		translations = append(translations, translationParam{
			LanguageISO: t.LanguageISO, Name: t.Name, Description: t.Description,
		})
	}

	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return domain.CreatedProduct{}, err
	}
	translationsJSON, err := json.Marshal(translations)
	if err != nil {
		return domain.CreatedProduct{}, err
	}

	var out domain.CreatedProduct
	err = r.db.QueryRowContext(ctx, `
		SELECT product_id, product_name, created_at
		FROM create_product($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::jsonb, $14::jsonb)`,
		p.Name, p.Description, string(p.Type), p.CategoryID,
		mapOptionalFloat(p.Price), mapOptionalFloat(p.BasePrice), mapOptionalString(p.ImageURL),
		p.PreparationTimeHours, p.MinOrderHours, mapOptionalString(p.ServingInfo), p.IsCustomizable,
		int32s(p.TagIDs), string(attrsJSON), string(translationsJSON),
	).Scan(&out.ID, &out.Name, &out.CreatedAt)
	if err != nil {
		return domain.CreatedProduct{}, mapPgError(err)
	}
	return out, nil
}
