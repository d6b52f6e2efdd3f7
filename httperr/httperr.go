// Package httperr renders the error envelope every failure response uses:
// {"error":{"code","message","fields","requestId"}}.
package httperr

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/healthstation/BEAttendance/logger"
)

type payload struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields"`
	RequestID string            `json:"requestId"`
}

func JSON(c echo.Context, status int, code, message string, fields map[string]string) error {
	return c.JSON(status, map[string]any{"error": payload{
		Code:      code,
		Message:   message,
		Fields:    fields,
		RequestID: requestID(c),
	}})
}

// Internal logs the real error server-side and returns a generic message,
// never the error itself.
func Internal(c echo.Context, err error, message string) error {
	logger.Error("internal error",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.String("request_id", requestID(c)),
		zap.Error(err),
	)
	if message == "" {
		message = "Terjadi kesalahan server."
	}
	return JSON(c, http.StatusInternalServerError, "INTERNAL", message, nil)
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
