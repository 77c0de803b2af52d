package httpsvc

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// errorBody — тело ответа об ошибке.
type errorBody struct {
	Detail string `json:"detail"`
}

// statusFor сопоставляет доменную ошибку с HTTP-статусом и текстом для клиента.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, domain.ErrUnknownReport):
		return http.StatusNotFound, "Report not found"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, "Cart is empty"
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRegistration):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// writeError пишет JSON-ошибку; внутренние ошибки логируются, клиенту уходит общий текст.
func (h *Handler) writeError(c *gin.Context, operation string, err error) {
	status, detail := statusFor(err)
	fields := log.Fields{
		"operation": operation,
		"path":      c.Request.URL.Path,
	}
	switch {
	case status >= http.StatusInternalServerError:
		h.logger.WithError(err).WithFields(fields).Error("request failed")
	case domain.IsNotFound(err):
		h.logger.WithError(err).WithFields(fields).Debug("lookup miss")
	}
	c.AbortWithStatusJSON(status, errorBody{Detail: detail})
}

// writeBindError отвечает 422 на некорректное тело запроса.
func writeBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorBody{Detail: err.Error()})
}
