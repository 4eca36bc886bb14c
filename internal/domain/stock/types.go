package stock

// Item is one unit of sellable inventory. Content is an opaque
// comma-delimited tuple of credential fields whose order and count vary by
// product.
type Item struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Content   string `json:"content"`
	Sold      bool   `json:"sold"`
}

// Product is the catalog entry an item belongs to. FormatData is an
// optional comma-separated list of field labels used when rendering
// delivered items.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	FormatData  string `json:"format_data"`
}
