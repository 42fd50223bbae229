package handler

import (
	"encoding/json"
	stdErrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/omniscope-hq/meeting-intel/errors"
	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/internal/usecase/intelligence"
	"github.com/omniscope-hq/meeting-intel/pkg/fathom"
)

// WebhookHandler receives meeting payloads from vendors and generic senders.
// Responses use the flat webhook contract: senders retry on 5xx, so every
// classified payload that is merely a duplicate still gets a 200.
type WebhookHandler struct {
	service intelligence.Service
	logger  *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(service intelligence.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		logger:  logger,
	}
}

// HandleUniversal receives any supported payload shape on the universal
// endpoint, classifying vendor-recording first, then canonical intelligence.
func (h *WebhookHandler) HandleUniversal(c echo.Context) error {
	return h.ingest(c, entities.SourceTypeFathom)
}

// HandleFathom receives Fathom webhook deliveries
func (h *WebhookHandler) HandleFathom(c echo.Context) error {
	return h.ingest(c, entities.SourceTypeFathom)
}

// HandlePlaud receives Plaud webhook deliveries
func (h *WebhookHandler) HandlePlaud(c echo.Context) error {
	return h.ingest(c, entities.SourceTypePlaud)
}

// HandleHealth reports webhook surface liveness
func (h *WebhookHandler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "meeting-intel",
		"webhooks": map[string]string{
			"universal": "/api/webhook/ingest",
			"fathom":    "/api/webhook/fathom",
			"plaud":     "/api/webhook/plaud",
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ingest classifies the body and runs the matching processing path. The
// vendor-recording check runs first so a payload matching both shapes gets
// the full enrichment path.
func (h *WebhookHandler) ingest(c echo.Context, recordingSource entities.SourceType) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return h.respondError(c, errors.ErrInvalidPayload())
	}

	var probe interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return h.respondError(c, errors.ErrUnrecognizedPayload())
	}

	orgID := c.QueryParam("orgId")
	ctx := c.Request().Context()

	switch {
	case intelligence.IsRawRecordingPayload(probe):
		var payload fathom.RawRecordingPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return h.respondError(c, errors.ErrInvalidPayload())
		}
		result, err := h.service.ProcessRecording(ctx, &payload, recordingSource, orgID)
		if err != nil {
			return h.respondError(c, err)
		}
		return h.respondResult(c, result, recordingSource)

	case intelligence.IsCanonicalIntelligencePayload(probe):
		var data entities.IntelligenceData
		if err := json.Unmarshal(body, &data); err != nil {
			return h.respondError(c, errors.ErrInvalidPayload())
		}
		result, err := h.service.ProcessIntelligence(ctx, &data, orgID)
		if err != nil {
			return h.respondError(c, err)
		}
		return h.respondResult(c, result, data.SourceType)

	default:
		return h.respondError(c, errors.ErrUnrecognizedPayload())
	}
}

func (h *WebhookHandler) respondResult(c echo.Context, result *intelligence.ProcessResult, source entities.SourceType) error {
	body := map[string]interface{}{
		"success": result.Success,
	}
	if result.MeetingID != "" {
		body["meetingId"] = result.MeetingID
	}
	if result.Success {
		body["source"] = string(source)
	}
	if result.Reason != "" {
		body["reason"] = result.Reason
	}
	return c.JSON(http.StatusOK, body)
}

// respondError keeps the flat webhook error contract: 4xx with the safe
// message for classification and validation failures, generic 500 otherwise.
func (h *WebhookHandler) respondError(c echo.Context, err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) && appErr.HTTPCode < 500 {
		return c.JSON(appErr.HTTPCode, map[string]interface{}{
			"success": false,
			"error":   appErr.Message,
		})
	}

	if h.logger != nil {
		h.logger.Error("webhook processing failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
	}
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   "Internal server error",
	})
}
