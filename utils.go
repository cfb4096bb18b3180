package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"financetracker/ledger"
	"financetracker/summary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusClientClosedRequest is reported when the caller went away before
// the response was ready.
const statusClientClosedRequest = 499

// Validation functions

// validateName validates that a name is not empty or just whitespace
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

// validateID validates that an id is a UUID
func validateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s must be a valid UUID", field)
	}
	return nil
}

// validateIDs validates a non-empty list of UUIDs
func validateIDs(ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("ids cannot be empty")
	}
	for _, id := range ids {
		if err := validateID("ids", id); err != nil {
			return err
		}
	}
	return nil
}

// parseDate parses a YYYY-MM-DD query or body value
func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(summary.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date", field)
	}
	return d, nil
}

// handleDatabaseError converts store errors to appropriate HTTP responses
func handleDatabaseError(err error) (statusCode int, message string) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound, "Not found."
	case errors.Is(err, ledger.ErrConflict):
		return http.StatusConflict, "Resource already exists"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out"
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "Request canceled"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// handleSummaryError converts aggregation errors to appropriate HTTP responses
func handleSummaryError(err error) (statusCode int, message string) {
	switch {
	case errors.Is(err, summary.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized."
	case errors.Is(err, summary.ErrInvalidPeriod):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Request timed out"
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "Request canceled"
	}
	return http.StatusInternalServerError, "Error calculating summary"
}

// requestContext bounds store calls by the request lifetime and the query timeout
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), queryTimeout)
}

// respondWithDatabaseError logs err and writes the mapped status and message
func respondWithDatabaseError(c *gin.Context, err error, logMsg string) {
	statusCode, message := handleDatabaseError(err)
	log := requestLogger(c)
	if statusCode >= http.StatusInternalServerError {
		log.Error().Err(err).Msg(logMsg)
	} else {
		log.Warn().Err(err).Msg(logMsg)
	}
	c.JSON(statusCode, gin.H{"error": message})
}
