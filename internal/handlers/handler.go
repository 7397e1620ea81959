package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/middleware"
	"github.com/odm275/dev-network/internal/monitoring"
	"github.com/odm275/dev-network/internal/service"
)

// Handler exposes the service over HTTP.
type Handler struct {
	svc           *service.Service
	monitor       *monitoring.Service
	monitoringKey string
}

func New(svc *service.Service, monitor *monitoring.Service, monitoringKey string) *Handler {
	return &Handler{svc: svc, monitor: monitor, monitoringKey: monitoringKey}
}

// respondError writes the error envelope. Errors without a kind are logged
// and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		log.Printf("request_id=%s method=%s path=%s error=%v",
			middleware.RequestIDFromContext(c), c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal",
			"message": "Internal server error",
		})
		return
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.JSON(appErr.Status(), body)
}

// bindJSON decodes the request body into dst. An empty body leaves dst zero
// so that field validation reports what is missing.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, apperr.Validation(map[string]string{
			"body": "Request body must be valid JSON",
		}))
		return false
	}
	return true
}

// track records the outcome of a write for the monitoring reports.
func track(operation string, startedAt time.Time, err error) {
	monitoring.RecordMutation(operation, time.Since(startedAt), err == nil)
}
