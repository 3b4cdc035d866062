// Package controller holds the helpers shared by the admin and user HTTP
// controllers: path parsing and the mapping from service errors to status codes.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/questree/internal/apperr"
	"github.com/lshigami/questree/internal/dto"
	"github.com/rs/zerolog/log"
)

// ParseID reads a uint path parameter. On failure it writes a 400 and returns false.
func ParseID(c *gin.Context, param, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + what + " ID format"})
		return 0, false
	}
	return uint(id), true
}

// BindError writes a 400 for a request body that failed binding or validation.
func BindError(c *gin.Context, err error) {
	log.Warn().Err(err).Str("path", c.FullPath()).Msg("Failed to bind request body")
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
}

// StatusOf maps an error from the service layer to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidChoice):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrSessionComplete),
		errors.Is(err, apperr.ErrSessionIncomplete),
		errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err with the status StatusOf picks. Server faults are
// logged at error level and their details are not echoed back.
func RespondError(c *gin.Context, err error, message string) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		c.JSON(status, dto.ErrorResponse{Message: message})
		return
	}
	log.Info().Err(err).Str("path", c.FullPath()).Int("status", status).Msg(message)
	c.JSON(status, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
}
