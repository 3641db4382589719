package domain

// DesignTemplate is a pre-built room design: a curated bundle of products for
// a room type and style. Only active, non-deleted templates reach the core;
// the catalog provider filters the rest out.
type DesignTemplate struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug,omitempty"`
	Description   string  `json:"description,omitempty"`
	CoverImageURL string  `json:"coverImageUrl,omitempty"`
	RoomType      string  `json:"roomType"`
	Style         string  `json:"style,omitempty"`
	TotalPrice    float64 `json:"totalPrice"`
	Discount      float64 `json:"discount"`
	SalesCount    int     `json:"salesCount"`
	Featured      bool    `json:"featured"`
}

// TemplateProduct joins a design template to one of its products. No
// referential integrity is enforced: a TemplateProduct pointing at an unknown
// product is simply skipped when assembling a summary.
type TemplateProduct struct {
	TemplateID int64  `json:"templateId"`
	ProductID  int64  `json:"productId"`
	Quantity   int    `json:"quantity"`
	Optional   bool   `json:"optional"`
	Notes      string `json:"notes,omitempty"`
}
