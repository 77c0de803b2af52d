package httpsvc

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		detail string
	}{
		{domain.ErrDuplicateEmail, http.StatusBadRequest, "Email already registered"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{fmt.Errorf("get: %w", domain.ErrProductNotFound), http.StatusNotFound, "Product not found"},
		{fmt.Errorf("%w: nope", domain.ErrUnknownReport), http.StatusNotFound, "Report not found"},
		{domain.ErrEmptyCart, http.StatusBadRequest, "Cart is empty"},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		status, detail := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.detail, detail, tt.err.Error())
	}
}

func TestWriteErrorLogLevels(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	h := &Handler{logger: log.NewEntry(logger)}

	write := func(err error) int {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/product/x", nil)
		h.writeError(c, "get_product", err)
		return rec.Code
	}

	assert.Equal(t, http.StatusNotFound, write(domain.ErrProductNotFound))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, log.DebugLevel, hook.LastEntry().Level)
	assert.Equal(t, "lookup miss", hook.LastEntry().Message)

	hook.Reset()
	assert.Equal(t, http.StatusBadRequest, write(domain.ErrEmptyCart))
	assert.Empty(t, hook.AllEntries())

	assert.Equal(t, http.StatusInternalServerError, write(errors.New("db down")))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "get_product", hook.LastEntry().Data["operation"])
}
