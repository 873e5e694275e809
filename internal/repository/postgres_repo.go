package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"inventory_service/internal/domain"
	"sort"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// updatableColumns maps wire field names to table columns for partial
// updates. The record id is deliberately absent: ids are immutable once
// assigned, so an "id" key in a patch is skipped like any unknown field.
var updatableColumns = map[string]string{
	"name":           "name",
	"category":       "category",
	"quantity":       "quantity",
	"unit":           "unit",
	"expirationDate": "expiration_date",
	"supplier":       "supplier",
	"price":          "price",
	"sku":            "sku",
	"reorderLevel":   "reorder_level",
	"batchNumber":    "batch_number",
}

// buildSetClause renders the SET fragment of a partial UPDATE from a patch
// map. Placeholders are numbered from $1; unknown keys come back in skipped
// instead of failing the statement. Keys are processed in sorted order so the
// generated SQL is deterministic.
func buildSetClause(updates map[string]interface{}) (string, []interface{}, []string) {
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	setClauses := []string{}
	args := []interface{}{}
	skipped := []string{}
	argCounter := 1

	for _, key := range keys {
		column, ok := updatableColumns[key]
		if !ok {
			skipped = append(skipped, key)
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCounter))
		args = append(args, updates[key])
		argCounter++
	}

	return strings.Join(setClauses, ", "), args, skipped
}

// EnsurePostgresSchema creates the products table when it does not exist yet,
// so the service can boot against an empty database.
func EnsurePostgresSchema(db *sql.DB) error {
	query := `
        CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            quantity BIGINT NOT NULL DEFAULT 0,
            unit TEXT NOT NULL DEFAULT '',
            expiration_date TEXT NOT NULL DEFAULT '',
            supplier TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            sku TEXT NOT NULL DEFAULT '',
            reorder_level BIGINT NOT NULL DEFAULT 0,
            batch_number TEXT NOT NULL DEFAULT ''
        )`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("could not create products table: %w", err)
	}
	return nil
}

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (id, name, category, quantity, unit, expiration_date,
                              supplier, price, sku, reorder_level, batch_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		product.ID,
		product.Name,
		product.Category,
		product.Quantity,
		product.Unit,
		product.ExpirationDate,
		product.Supplier,
		product.Price,
		product.SKU,
		product.ReorderLevel,
		product.BatchNumber,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to create product with duplicate ID: %s", product.ID)
			return nil, domain.ErrDuplicateID
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, domain.NewStorageError("create product", err)
	}
	r.log.Infof("Product created successfully with ID: %s, Name: %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(id string) (*domain.Product, error) {
	query := `
        SELECT id, name, category, quantity, unit, expiration_date,
               supplier, price, sku, reorder_level, batch_number
        FROM products
        WHERE id = $1`
	product := &domain.Product{}

	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Quantity,
		&product.Unit,
		&product.ExpirationDate,
		&product.Supplier,
		&product.Price,
		&product.SKU,
		&product.ReorderLevel,
		&product.BatchNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %s not found", id)
			return nil, domain.ErrProductNotFound
		}
		r.log.Errorf("Failed to get product by ID %s: %v", id, err)
		return nil, domain.NewStorageError("get product", err)
	}

	return product, nil
}

func (r *postgresProductRepository) ListProducts() ([]domain.Product, error) {
	query := `
        SELECT id, name, category, quantity, unit, expiration_date,
               supplier, price, sku, reorder_level, batch_number
        FROM products
        ORDER BY id ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, domain.NewStorageError("list products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Quantity,
			&product.Unit,
			&product.ExpirationDate,
			&product.Supplier,
			&product.Price,
			&product.SKU,
			&product.ReorderLevel,
			&product.BatchNumber,
		); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, domain.NewStorageError("scan product", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, domain.NewStorageError("iterate products", err)
	}
	r.log.Debugf("Retrieved %d products", len(products))
	return products, nil
}

func (r *postgresProductRepository) UpdateProduct(id string, updates map[string]interface{}) (*domain.Product, error) {
	if len(updates) == 0 {
		r.log.Infof("No fields provided for product update ID %s. Returning current product.", id)
		return r.GetProductByID(id)
	}

	setClause, args, skipped := buildSetClause(updates)
	for _, key := range skipped {
		r.log.Warnf("Skipping unknown field '%s' provided for product update ID %s", key, id)
	}
	if setClause == "" {
		r.log.Warnf("No valid known fields provided for product update ID %s. Returning current product.", id)
		return r.GetProductByID(id)
	}

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", setClause, len(args)+1)
	args = append(args, id)

	r.log.Debugf("Executing partial update query for ID %s: %s with args: %v", id, query, args)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		r.log.Errorf("Failed to execute partial update for product ID %s: %v", id, err)
		return nil, domain.NewStorageError("update product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after partial update for ID %s: %v", id, err)
		return nil, domain.NewStorageError("update product", err)
	}

	if rowsAffected == 0 {
		r.log.Warnf("Product with ID %s not found for update (0 rows affected)", id)
		return nil, domain.ErrProductNotFound
	}

	r.log.Infof("Partial update successful for product ID %s (%d rows affected). Fetching updated product.", id, rowsAffected)
	return r.GetProductByID(id)
}

func (r *postgresProductRepository) DeleteProduct(id string) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		r.log.Errorf("Failed to delete product ID %s: %v", id, err)
		return domain.NewStorageError("delete product", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting product ID %s: %v", id, err)
		return domain.NewStorageError("delete product", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %s", id)
		return domain.ErrProductNotFound
	}
	r.log.Infof("Product deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresProductRepository) ListCategories() ([]string, error) {
	query := `
        SELECT DISTINCT category
        FROM products
        WHERE category <> ''
        ORDER BY category ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, domain.NewStorageError("list categories", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			r.log.Errorf("Failed to scan category row: %v", err)
			return nil, domain.NewStorageError("scan category", err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during category list iteration: %v", err)
		return nil, domain.NewStorageError("iterate categories", err)
	}
	return categories, nil
}

func (r *postgresProductRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *postgresProductRepository) Close() error {
	return r.db.Close()
}
