package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/gym-backend/internal/application"
	"github.com/oksasatya/gym-backend/pkg/response"
	"github.com/oksasatya/gym-backend/pkg/validation"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Order matters: ErrPartialFailure must win over ErrStorage.
var errorTable = []errorMapping{
	{application.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
	{application.ErrWeakPassword, http.StatusBadRequest, "weak_password"},
	{application.ErrTokenExpired, http.StatusBadRequest, "token_expired"},
	{application.ErrSlotsExhausted, http.StatusBadRequest, "slots_exhausted"},
	{application.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{application.ErrInvalidToken, http.StatusNotFound, "invalid_token"},
	{application.ErrNotFound, http.StatusNotFound, "not_found"},
	{application.ErrConflict, http.StatusConflict, "conflict"},
	{application.ErrWeakGeneratedSecret, http.StatusInternalServerError, "weak_generated_secret"},
	{application.ErrPartialFailure, http.StatusInternalServerError, "partial_failure"},
	{application.ErrStorage, http.StatusInternalServerError, "storage_failure"},
	{application.ErrGateway, http.StatusBadGateway, "gateway_error"},
	{application.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
}

func classify(err error) (int, string, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			msg := m.err.Error()
			if m.err == application.ErrInvalidRequest {
				msg = err.Error()
			}
			return m.status, m.code, msg
		}
	}
	return http.StatusInternalServerError, "internal", "internal error"
}

// writeError maps a service error onto the response envelope.
// Server-side failures are logged with the underlying cause; the client only sees the code.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status, code, msg := classify(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
			"code":       code,
		}).Error("request failed")
	}
	response.Error[any](c, status, msg, response.ErrorBody{Code: code})
}

func bindError(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", response.ErrorBody{
		Code:    "invalid_request",
		Details: validation.ToDetails(err),
	})
}
