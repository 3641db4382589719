package domain

import "context"

// CatalogRepository provides read-only access to the active product and
// design-template catalog. Implementations return only currently active,
// non-deleted records.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListTemplates(ctx context.Context) ([]DesignTemplate, error)
	ListTemplateProducts(ctx context.Context) ([]TemplateProduct, error)
	Close() error
}

// ModelClient is the single entry point for hosted language model calls.
// Implementations never fail: on any transport or payload problem they return
// the literal empty-list token "[]", so callers always receive syntactically
// parseable text.
type ModelClient interface {
	Ask(ctx context.Context, prompt string) string
}
