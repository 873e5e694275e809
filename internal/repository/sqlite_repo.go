package repository

import (
	"context"
	"errors"
	"fmt"
	"inventory_service/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EnsureSQLiteSchema migrates the products table on the embedded engine.
func EnsureSQLiteSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Product{}); err != nil {
		return fmt.Errorf("could not migrate products table: %w", err)
	}
	return nil
}

type sqliteProductRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewSQLiteProductRepository(db *gorm.DB, logger *logrus.Logger) domain.ProductRepository {
	return &sqliteProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *sqliteProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warnf("Attempted to create product with duplicate ID: %s", product.ID)
			return nil, domain.ErrDuplicateID
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, domain.NewStorageError("create product", err)
	}
	r.log.Infof("Product created successfully with ID: %s, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *sqliteProductRepository) GetProductByID(id string) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warnf("Product with ID %s not found", id)
			return nil, domain.ErrProductNotFound
		}
		r.log.Errorf("Failed to get product by ID %s: %v", id, err)
		return nil, domain.NewStorageError("get product", err)
	}
	return &product, nil
}

func (r *sqliteProductRepository) ListProducts() ([]domain.Product, error) {
	products := []domain.Product{}
	if err := r.db.Order("id ASC").Find(&products).Error; err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, domain.NewStorageError("list products", err)
	}
	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}

func (r *sqliteProductRepository) UpdateProduct(id string, updates map[string]interface{}) (*domain.Product, error) {
	if len(updates) == 0 {
		r.log.Infof("No fields provided for product update ID %s. Returning current product.", id)
		return r.GetProductByID(id)
	}

	columns := map[string]interface{}{}
	for key, value := range updates {
		column, ok := updatableColumns[key]
		if !ok {
			r.log.Warnf("Skipping unknown field '%s' provided for product update ID %s", key, id)
			continue
		}
		columns[column] = value
	}
	if len(columns) == 0 {
		r.log.Warnf("No valid known fields provided for product update ID %s. Returning current product.", id)
		return r.GetProductByID(id)
	}

	result := r.db.Model(&domain.Product{}).Where("id = ?", id).Updates(columns)
	if err := result.Error; err != nil {
		r.log.Errorf("Failed to execute partial update for product ID %s: %v", id, err)
		return nil, domain.NewStorageError("update product", err)
	}
	if result.RowsAffected == 0 {
		r.log.Warnf("Product with ID %s not found for update (0 rows affected)", id)
		return nil, domain.ErrProductNotFound
	}

	r.log.Infof("Partial update successful for product ID %s (%d rows affected). Fetching updated product.", id, result.RowsAffected)
	return r.GetProductByID(id)
}

func (r *sqliteProductRepository) DeleteProduct(id string) error {
	result := r.db.Delete(&domain.Product{}, "id = ?", id)
	if err := result.Error; err != nil {
		r.log.Errorf("Failed to delete product ID %s: %v", id, err)
		return domain.NewStorageError("delete product", err)
	}
	if result.RowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %s", id)
		return domain.ErrProductNotFound
	}
	r.log.Infof("Product deleted successfully with ID: %s", id)
	return nil
}

func (r *sqliteProductRepository) ListCategories() ([]string, error) {
	categories := []string{}
	err := r.db.Model(&domain.Product{}).
		Where("category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, domain.NewStorageError("list categories", err)
	}
	return categories, nil
}

func (r *sqliteProductRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *sqliteProductRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
