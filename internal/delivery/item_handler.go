package delivery

import (
	"inventory_service/internal/domain"
	"inventory_service/internal/usecase"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ItemHandler struct {
	useCase usecase.InventoryUseCase
	log     *logrus.Logger
}

func NewItemHandler(uc usecase.InventoryUseCase, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ItemHandler) RegisterRoutes(router gin.IRouter) {
	items := router.Group("/items")
	{
		items.POST("", h.AddItem)
		items.GET("", h.ListItems)
		items.GET("/expiring_items", h.ExpiringItems)
		items.GET("/low_stock", h.LowStock)
		items.GET("/categories", h.Categories)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

func (h *ItemHandler) AddItem(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Errorf("Failed to bind JSON for create item: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	createdProduct, err := h.useCase.AddProduct(&product)
	if err != nil {
		h.log.Errorf("Failed to create item '%s': %v", product.Name, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Item created successfully: ID %s, Name %s", createdProduct.ID, createdProduct.Name)
	c.JSON(http.StatusCreated, createdProduct)
}

func (h *ItemHandler) ListItems(c *gin.Context) {
	products, err := h.useCase.ListProducts()
	if err != nil {
		h.log.Errorf("Failed to list items: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	id := c.Param("id")

	product, err := h.useCase.GetProduct(id)
	if err != nil {
		h.log.Warnf("Failed to get item by ID %s: %v", id, err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id := c.Param("id")

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.Errorf("Failed to bind JSON for update item ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updatedProduct, err := h.useCase.UpdateProduct(id, updates)
	if err != nil {
		h.log.Errorf("Failed to update item ID %s: %v", id, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Item updated successfully: ID %s", updatedProduct.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated",
		"item":    updatedProduct,
	})
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id := c.Param("id")

	if err := h.useCase.DeleteProduct(id); err != nil {
		h.log.Warnf("Failed to delete item ID %s: %v", id, err)
		respondError(c, err)
		return
	}

	h.log.Infof("Item deleted successfully: ID %s", id)
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func (h *ItemHandler) ExpiringItems(c *gin.Context) {
	report, err := h.useCase.ExpirationReport(time.Now())
	if err != nil {
		h.log.Errorf("Failed to build expiration report: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ItemHandler) LowStock(c *gin.Context) {
	products, err := h.useCase.ListLowStock()
	if err != nil {
		h.log.Errorf("Failed to build low stock report: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ItemHandler) Categories(c *gin.Context) {
	categories, err := h.useCase.ListCategories()
	if err != nil {
		h.log.Errorf("Failed to list categories: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}
