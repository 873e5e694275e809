package domain

// Product is the single inventory record type. The json tags are the wire
// contract shared with the frontend and must not change; the gorm tags drive
// schema creation on the sqlite engine.
type Product struct {
	ID             string  `json:"id" gorm:"primaryKey;size:36"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Quantity       int     `json:"quantity"`
	Unit           string  `json:"unit"`
	ExpirationDate string  `json:"expirationDate"`
	Supplier       string  `json:"supplier"`
	Price          float64 `json:"price"`
	SKU            string  `json:"sku"`
	ReorderLevel   int     `json:"reorderLevel"`
	BatchNumber    string  `json:"batchNumber"`
}

// ExpirationReport buckets records for the expiring-items view.
type ExpirationReport struct {
	ExpiringSoon   []Product `json:"expiring_soon"`
	AlreadyExpired []Product `json:"already_expired"`
}
