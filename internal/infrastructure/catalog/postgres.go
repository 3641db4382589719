package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/decohogar/backend/internal/domain"
)

const productsQuery = `
	SELECT
		id,
		name,
		description,
		type,
		base_price,
		attributes_normalized,
		sku,
		slug,
		sales_count,
		stock_alert
	FROM "Product"
	WHERE is_active = true
	ORDER BY id`

const templatesQuery = `
	SELECT
		id, name, slug, description, cover_image_url,
		discount, room_type, style, total_price,
		sales_count, featured
	FROM "DesignTemplate"
	WHERE is_active = true AND deleted_at IS NULL
	ORDER BY sales_count DESC, created_at DESC`

const templateProductsQuery = `
	SELECT
		template_id, product_id, quantity,
		is_optional, notes
	FROM "DesignTemplateProduct"
	ORDER BY template_id, product_id`

// PostgresRepository reads the product and design-template catalog from
// Postgres. Reads go through a shared TTL snapshot cache so chat traffic does
// not hammer the database.
type PostgresRepository struct {
	db    *sql.DB
	cache *snapshotCache
}

// Open connects to the database, verifies the connection, and returns a
// repository whose reads are cached for cacheTTL.
func Open(databaseURL string, cacheTTL time.Duration) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("[DB] connected")
	return &PostgresRepository{
		db:    db,
		cache: newSnapshotCache(cacheTTL),
	}, nil
}

// Close releases the database connection pool.
func (r *PostgresRepository) Close() error {
	r.cache.clear()
	return r.db.Close()
}

func (r *PostgresRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.products, nil
}

func (r *PostgresRepository) ListTemplates(ctx context.Context) ([]domain.DesignTemplate, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.templates, nil
}

func (r *PostgresRepository) ListTemplateProducts(ctx context.Context) ([]domain.TemplateProduct, error) {
	s, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.templateProducts, nil
}

func (r *PostgresRepository) snapshot(ctx context.Context) (*snapshot, error) {
	if s, ok := r.cache.get(); ok {
		return s, nil
	}

	products, err := r.queryProducts(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := r.queryTemplates(ctx)
	if err != nil {
		return nil, err
	}
	templateProducts, err := r.queryTemplateProducts(ctx)
	if err != nil {
		return nil, err
	}

	s := &snapshot{
		products:         products,
		templates:        templates,
		templateProducts: templateProducts,
	}
	r.cache.set(s)
	log.Printf("[DB] snapshot refreshed: %d products, %d templates, %d template products",
		len(products), len(templates), len(templateProducts))
	return s, nil
}

func (r *PostgresRepository) queryProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, productsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			p           domain.Product
			description sql.NullString
			ptype       sql.NullString
			attributes  sql.NullString
			sku         sql.NullString
			slug        sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &description, &ptype, &p.BasePrice,
			&attributes, &sku, &slug, &p.SalesCount, &p.StockAlert); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Description = description.String
		p.Type = ptype.String
		p.SKU = sku.String
		p.Slug = slug.String
		p.Attributes = parseAttributes(attributes)
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresRepository) queryTemplates(ctx context.Context) ([]domain.DesignTemplate, error) {
	rows, err := r.db.QueryContext(ctx, templatesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.DesignTemplate
	for rows.Next() {
		var (
			t           domain.DesignTemplate
			slug        sql.NullString
			description sql.NullString
			coverImage  sql.NullString
			roomType    sql.NullString
			style       sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &slug, &description, &coverImage,
			&t.Discount, &roomType, &style, &t.TotalPrice, &t.SalesCount, &t.Featured); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		t.Slug = slug.String
		t.Description = description.String
		t.CoverImageURL = coverImage.String
		t.RoomType = roomType.String
		t.Style = style.String
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *PostgresRepository) queryTemplateProducts(ctx context.Context) ([]domain.TemplateProduct, error) {
	rows, err := r.db.QueryContext(ctx, templateProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query template products: %w", err)
	}
	defer rows.Close()

	var templateProducts []domain.TemplateProduct
	for rows.Next() {
		var (
			tp    domain.TemplateProduct
			notes sql.NullString
		)
		if err := rows.Scan(&tp.TemplateID, &tp.ProductID, &tp.Quantity, &tp.Optional, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan template product: %w", err)
		}
		tp.Notes = notes.String
		templateProducts = append(templateProducts, tp)
	}
	return templateProducts, rows.Err()
}

// parseAttributes decodes the attributes_normalized column. The column holds
// free-form JSON written by the storefront; anything that does not decode
// cleanly is treated as no attributes rather than an error.
func parseAttributes(raw sql.NullString) domain.Attributes {
	if !raw.Valid || raw.String == "" {
		return domain.Attributes{}
	}

	var attrs domain.Attributes
	if err := json.Unmarshal([]byte(raw.String), &attrs); err != nil {
		log.Printf("[DB] unparseable attributes payload: %v", err)
		return domain.Attributes{}
	}
	return attrs
}
