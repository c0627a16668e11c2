package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jimitchavdadev/ecommerce-platform/internal/auth"
	"github.com/jimitchavdadev/ecommerce-platform/internal/orders"
)

// writeOrderError maps service-layer errors onto the HTTP taxonomy: 404 for
// missing records, 409 for business-rule violations, 400 for bad input, 500
// for everything unexpected. The error text goes to the client verbatim; the
// sentinels already carry human-readable messages.
func writeOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orders.ErrProductNotFound), errors.Is(err, orders.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrInsufficientStock), errors.Is(err, orders.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// requireAdmin runs the explicit capability check and writes the
// authorization failure itself. Returns false when the caller must stop.
func requireAdmin(c *gin.Context, ident auth.Identity, requiredRole string) bool {
	if err := auth.Authorize(ident, requiredRole); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// mustIdentity fetches the identity injected by the auth middleware. Routes
// calling this are always registered behind RequireAuth; a miss means a
// wiring bug, answered with 401 rather than a panic.
func mustIdentity(c *gin.Context) (auth.Identity, bool) {
	ident, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return ident, ok
}
