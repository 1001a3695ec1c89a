// Package handlers exposes the stores over HTTP. Handlers parse and bind
// requests, delegate to the stores, and translate errors; business rules
// stay out of this package.
package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/i18n"
	"github.com/HelplessSneeker/noessi-immo/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fail writes an error response: translated message, stable error kind
// and the request id. Storage errors are logged with the request id so
// an operator can correlate the log line with the client report.
func fail(c *gin.Context, err error) {
	requestID := middleware.RequestID(c)
	locale := i18n.DetectLocale(c.GetHeader("Accept-Language"))

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Storage("unknown", err)
	}

	if appErr.Kind == apperr.KindStorage {
		log.Printf("Storage error [%s]: %v", requestID, appErr)
	}

	body := gin.H{
		"error":      i18n.T(locale, appErr.MessageKey),
		"error_type": string(appErr.Kind),
		"request_id": requestID,
	}
	if len(appErr.Details) > 0 && appErr.Kind != apperr.KindStorage {
		body["details"] = appErr.Details
	}
	c.JSON(appErr.Status(), body)
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, apperr.Validation("invalid_id", map[string]any{"id": c.Param("id")}))
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional uuid query parameter; nil when absent.
func queryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, apperr.Validation("invalid_id", map[string]any{name: v})
	}
	return &id, nil
}

// parseDate parses a YYYY-MM-DD value.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid_date", map[string]any{"date": value})
	}
	return t, nil
}

// parseOptionalDate parses a YYYY-MM-DD value; nil when empty.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
