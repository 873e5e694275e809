package usecase

import (
	"inventory_service/internal/domain"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type InventoryUseCase interface {
	AddProduct(product *domain.Product) (*domain.Product, error)
	GetProduct(id string) (*domain.Product, error)
	ListProducts() ([]domain.Product, error)
	UpdateProduct(id string, updates map[string]interface{}) (*domain.Product, error)
	DeleteProduct(id string) error

	ExpirationReport(today time.Time) (*domain.ExpirationReport, error)
	ListLowStock() ([]domain.Product, error)
	ListCategories() ([]string, error)

	SeedSampleData() (int, error)
}

type inventoryUseCase struct {
	repo domain.ProductRepository
	log  *logrus.Logger
}

func NewInventoryUseCase(repo domain.ProductRepository, logger *logrus.Logger) InventoryUseCase {
	return &inventoryUseCase{
		repo: repo,
		log:  logger,
	}
}

func (uc *inventoryUseCase) AddProduct(product *domain.Product) (*domain.Product, error) {
	if product.ID == "" {
		product.ID = uuid.New().String()
		uc.log.Debugf("Use Case: Generated ID %s for new product '%s'", product.ID, product.Name)
	}

	uc.log.Infof("Use Case: Attempting to create product '%s'", product.Name)
	createdProduct, err := uc.repo.CreateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %s", createdProduct.Name, createdProduct.ID)
	return createdProduct, nil
}

func (uc *inventoryUseCase) GetProduct(id string) (*domain.Product, error) {
	product, err := uc.repo.GetProductByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %s: %v", id, err)
		return nil, err
	}
	return product, nil
}

func (uc *inventoryUseCase) ListProducts() ([]domain.Product, error) {
	products, err := uc.repo.ListProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, err
	}
	uc.log.Infof("Use Case: Retrieved %d products", len(products))
	return products, nil
}

// intFields are the patch keys whose values must land as integers. JSON
// decoding into a map hands every number over as float64.
var intFields = map[string]bool{
	"quantity":     true,
	"reorderLevel": true,
}

func (uc *inventoryUseCase) UpdateProduct(id string, updates map[string]interface{}) (*domain.Product, error) {
	if _, ok := updates["id"]; ok {
		uc.log.Warnf("Use Case: Ignoring attempt to change immutable id for product ID %s", id)
		delete(updates, "id")
	}

	for key, value := range updates {
		if !intFields[key] {
			continue
		}
		if floatVal, ok := value.(float64); ok {
			updates[key] = int(floatVal)
		}
	}

	uc.log.Infof("Use Case: Attempting partial update for product ID %s with fields: %v", id, updates)
	updatedProduct, err := uc.repo.UpdateProduct(id, updates)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed partial update for product ID %s: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %s", updatedProduct.ID)
	return updatedProduct, nil
}

func (uc *inventoryUseCase) DeleteProduct(id string) error {
	uc.log.Infof("Use Case: Attempting to delete product ID %s", id)
	err := uc.repo.DeleteProduct(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Product deleted successfully for ID %s", id)
	return nil
}

// ExpirationReport walks the inventory once and buckets every record whose
// expiration date parses. Records without a usable date are skipped, never
// fatal.
func (uc *inventoryUseCase) ExpirationReport(today time.Time) (*domain.ExpirationReport, error) {
	products, err := uc.repo.ListProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products for expiration report: %v", err)
		return nil, err
	}

	report := &domain.ExpirationReport{
		ExpiringSoon:   []domain.Product{},
		AlreadyExpired: []domain.Product{},
	}
	skipped := 0
	for _, product := range products {
		switch domain.ClassifyExpiration(product.ExpirationDate, today) {
		case domain.StatusExpiringSoon:
			report.ExpiringSoon = append(report.ExpiringSoon, product)
		case domain.StatusAlreadyExpired:
			report.AlreadyExpired = append(report.AlreadyExpired, product)
		case domain.StatusUnknown:
			skipped++
			uc.log.Debugf("Use Case: Skipping product ID %s with unusable expiration date '%s'", product.ID, product.ExpirationDate)
		}
	}
	if skipped > 0 {
		uc.log.Warnf("Use Case: Expiration report skipped %d products without a parseable date", skipped)
	}

	uc.log.Infof("Use Case: Expiration report built: %d expiring soon, %d already expired", len(report.ExpiringSoon), len(report.AlreadyExpired))
	return report, nil
}

func (uc *inventoryUseCase) ListLowStock() ([]domain.Product, error) {
	products, err := uc.repo.ListProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products for low stock report: %v", err)
		return nil, err
	}

	lowStock := []domain.Product{}
	for _, product := range products {
		if product.ReorderLevel > 0 && product.Quantity <= product.ReorderLevel {
			lowStock = append(lowStock, product)
		}
	}
	uc.log.Infof("Use Case: %d of %d products at or below their reorder level", len(lowStock), len(products))
	return lowStock, nil
}

func (uc *inventoryUseCase) ListCategories() ([]string, error) {
	categories, err := uc.repo.ListCategories()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, err
	}
	return categories, nil
}

// sampleProducts returns a starter inventory for fresh databases. Expiration
// dates are relative to today so the expiring-items view always has content.
func sampleProducts(today time.Time) []domain.Product {
	date := func(days int) string {
		return today.AddDate(0, 0, days).Format(domain.ExpirationDateLayout)
	}
	return []domain.Product{
		{ID: "sample-milk", Name: "Whole Milk", Category: "Dairy", Quantity: 24, Unit: "liter", ExpirationDate: date(10), Supplier: "Green Farms", Price: 2.49, SKU: "MLK-001", ReorderLevel: 12, BatchNumber: "B-1001"},
		{ID: "sample-cheddar", Name: "Cheddar Block", Category: "Dairy", Quantity: 8, Unit: "kg", ExpirationDate: date(45), Supplier: "Hillside Dairy Co", Price: 7.90, SKU: "CHS-014", ReorderLevel: 10, BatchNumber: "B-1002"},
		{ID: "sample-yogurt", Name: "Greek Yogurt", Category: "Dairy", Quantity: 30, Unit: "cup", ExpirationDate: date(-3), Supplier: "Green Farms", Price: 1.19, SKU: "YGT-203", ReorderLevel: 15, BatchNumber: "B-1003"},
		{ID: "sample-rice", Name: "Basmati Rice", Category: "Dry Goods", Quantity: 50, Unit: "kg", ExpirationDate: date(200), Supplier: "Eastern Imports", Price: 3.25, SKU: "RCE-310", ReorderLevel: 20, BatchNumber: "B-1004"},
		{ID: "sample-honey", Name: "Wildflower Honey", Category: "Pantry", Quantity: 14, Unit: "jar", ExpirationDate: "", Supplier: "Bee Good", Price: 5.60, SKU: "HNY-118", ReorderLevel: 5, BatchNumber: "B-1005"},
	}
}

// SeedSampleData populates an empty store with the starter inventory. It is
// a no-op when any records already exist.
func (uc *inventoryUseCase) SeedSampleData() (int, error) {
	existing, err := uc.repo.ListProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products before seeding: %v", err)
		return 0, err
	}
	if len(existing) > 0 {
		uc.log.Infof("Use Case: Store already holds %d products, skipping sample data", len(existing))
		return 0, nil
	}

	seeded := 0
	for _, product := range sampleProducts(time.Now()) {
		p := product
		if _, err := uc.repo.CreateProduct(&p); err != nil {
			uc.log.Errorf("Use Case: Failed to seed sample product '%s': %v", p.Name, err)
			return seeded, err
		}
		seeded++
	}
	uc.log.Infof("Use Case: Seeded %d sample products", seeded)
	return seeded, nil
}
