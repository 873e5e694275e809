package delivery

import (
	"errors"
	"inventory_service/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse writes the flat error body the frontend expects.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// mapErrorToStatus translates the domain error taxonomy into HTTP status
// codes. Anything unrecognized counts as a storage-level failure.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateID):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps err onto the wire. The not-found message is pinned to
// the exact string existing clients match on.
func respondError(c *gin.Context, err error) {
	message := err.Error()
	if errors.Is(err, domain.ErrProductNotFound) {
		message = "Item not found"
	}
	ErrorResponse(c, mapErrorToStatus(err), message)
}
