package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/internal/shop/store"
)

type productsRepo struct {
	db  dbtx
	now func() time.Time
}

var productSortColumns = map[domain.ProductSortBy]string{
	domain.SortByCreatedAt: "p.created_at",
	domain.SortByPrice:     "COALESCE(p.price, p.base_price)",
	domain.SortByName:      "COALESCE(tr.name, p.name)",
}

// productFilter renders the WHERE clause shared by the count and page queries.
func productFilter(q domain.ProductQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if q.CategoryID != nil {
		clauses = append(clauses, "p.category_id = ?")
		args = append(args, *q.CategoryID)
	}
	if len(q.TagIDs) > 0 {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(q.TagIDs)), ",")
		clauses = append(clauses,
			"p.id IN (SELECT product_id FROM product_tags WHERE tag_id IN ("+marks+"))")
		for _, id := range q.TagIDs {
			args = append(args, id)
		}
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *productsRepo) ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	where, args := productFilter(q)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products p`+where, args...,
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

	sortCol, ok := productSortColumns[q.SortBy]
	if !ok {
		sortCol = productSortColumns[domain.SortByCreatedAt]
	}
	order := "DESC"
	if q.SortOrder == domain.SortAsc {
		order = "ASC"
	}

	query := `
		SELECT
			p.id,
			COALESCE(tr.name, p.name),
			COALESCE(tr.description, p.description),
			p.product_type, p.price, p.base_price, p.image_url,
			p.preparation_time_hours, p.min_order_hours, p.serving_info,
			p.is_customizable, p.created_at,
			c.id, c.name, c.color, c.description,
			(SELECT COUNT(*) FROM product_variants v WHERE v.product_id = p.id),
			(SELECT v.id FROM product_variants v WHERE v.product_id = p.id AND v.is_default = 1 ORDER BY v.id LIMIT 1),
			(SELECT COUNT(*) FROM product_attributes a WHERE a.product_id = p.id),
			(SELECT COUNT(*) FROM product_tags t WHERE t.product_id = p.id),
			(SELECT COUNT(*) FROM product_images i WHERE i.product_id = p.id)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		LEFT JOIN product_translations tr
			ON tr.product_id = p.id
			AND tr.language_id = (SELECT id FROM languages WHERE iso_code = ?)` +
		where + `
		ORDER BY ` + sortCol + ` ` + order + `, p.id ` + order + `
		LIMIT ? OFFSET ?`

	queryArgs := make([]any, 0, len(args)+3)
	queryArgs = append(queryArgs, q.LanguageISO)
	queryArgs = append(queryArgs, args...)
	queryArgs = append(queryArgs, q.Size, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return domain.ProductPage{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item             domain.ProductListItem
			price, basePrice sql.NullFloat64
			imageURL         sql.NullString
			servingInfo      sql.NullString
			categoryDesc     sql.NullString
			defaultVariant   sql.NullInt64
		)
		err := rows.Scan(
			&item.ID, &item.Name, &item.Description,
			&item.Type, &price, &basePrice, &imageURL,
			&item.PreparationTimeHours, &item.MinOrderHours, &servingInfo,
			&item.IsCustomizable, &item.CreatedAt,
			&item.Category.ID, &item.Category.Name, &item.Category.Color, &categoryDesc,
			&item.VariantCount, &defaultVariant,
			&item.AttributeCount, &item.TagCount, &item.ImageCount,
		)
		if err != nil {
			return domain.ProductPage{}, err
		}
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

// CreateProduct is several statements; callers run it inside WithTx.
func (r *productsRepo) CreateProduct(ctx context.Context, p domain.NewProduct) (domain.CreatedProduct, error) {
	now := r.now()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO products (
			name, description, product_type, category_id, price, base_price,
			image_url, preparation_time_hours, min_order_hours, serving_info,
			is_customizable, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, string(p.Type), p.CategoryID,
		mapOptionalFloat(p.Price), mapOptionalFloat(p.BasePrice),
		mapOptionalString(p.ImageURL), p.PreparationTimeHours, p.MinOrderHours,
		mapOptionalString(p.ServingInfo), p.IsCustomizable, now,
	)
	if err != nil {
		return domain.CreatedProduct{}, mapConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.CreatedProduct{}, err
	}

	for _, tagID := range p.TagIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO product_tags (product_id, tag_id) VALUES (?, ?)`, id, tagID,
		); err != nil {
			return domain.CreatedProduct{}, mapConstraint(err)
		}
	}

	for _, a := range p.Attributes {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO product_attributes (product_id, name, value, color) VALUES (?, ?, ?, ?)`,
			id, a.Name, a.Value, mapOptionalString(a.Color),
		); err != nil {
			return domain.CreatedProduct{}, mapConstraint(err)
		}
	}

	for _, t := range p.Translations {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO product_translations (product_id, language_id, name, description)
			SELECT ?, id, ?, ? FROM languages WHERE iso_code = ?`,
			id, t.Name, mapOptionalString(t.Description), t.LanguageISO,
		)
		if err != nil {
			return domain.CreatedProduct{}, mapConstraint(err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return domain.CreatedProduct{}, err
		} else if n == 0 {
			return domain.CreatedProduct{}, store.ErrNotFound
		}
	}

	return domain.CreatedProduct{ID: int(id), Name: p.Name, CreatedAt: now}, nil
}
