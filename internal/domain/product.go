// domain/product.go
package domain

import "context"

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(id string) (*Product, error)
	ListProducts() ([]Product, error)

	UpdateProduct(id string, updates map[string]interface{}) (*Product, error)

	DeleteProduct(id string) error
	ListCategories() ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}
