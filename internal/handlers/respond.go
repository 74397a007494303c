package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fiscal-ops-backend/internal/repository"
	"fiscal-ops-backend/internal/services/fiscalbatch"
	"fiscal-ops-backend/internal/services/monthly"
)

func respondError(c *gin.Context, err error) {
	var validation *fiscalbatch.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.Is(err, monthly.ErrAlreadyRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
