package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/omniscope-hq/meeting-intel/errors"
)

// HandleSuccess sends a success envelope for admin endpoints
func HandleSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// HandleError maps an error onto an HTTP error envelope. AppError carries its
// own status code and safe message; anything else is a generic 500.
func HandleError(c echo.Context, logger *zap.Logger, err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if appErr.HTTPCode >= 500 && logger != nil {
			logger.Error("request failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
		}
		body := map[string]interface{}{
			"success": false,
			"error":   appErr.Message,
			"code":    appErr.Code.String(),
		}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("request failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
	}
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"error":   "Internal server error",
	})
}
