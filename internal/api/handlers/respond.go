package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/fleet/services/rental/internal/services"
)

// parseIDParam reads the :id path parameter as an unsigned integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto HTTP statuses: reference and
// identifier-mismatch failures are the caller's fault (400), missing
// rows and empty filtered results are 404, everything else is 500.
func respondError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var reference *services.ReferenceError
	var mismatch *services.IDMismatchError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.Is(err, services.ErrNoResults):
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching records"})
	case errors.As(err, &reference):
		c.JSON(http.StatusBadRequest, gin.H{"error": reference.Error()})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": mismatch.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
