package httperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func TestBusinessError(t *testing.T) {
	err := httperr.ErrBusiness("time_conflict")

	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.False(t, httperr.IsBusiness(err, "appointment_not_found"))
	assert.False(t, httperr.IsBusiness(errors.New("connection reset"), "time_conflict"))

	t.Run("code survives wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("insert: %w", err)
		code, ok := httperr.IsAnyBusiness(wrapped)
		assert.True(t, ok)
		assert.Equal(t, "time_conflict", code)
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		_, ok := httperr.IsAnyBusiness(errors.New("connection reset"))
		assert.False(t, ok)
	})
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, httperr.IsExclusionConflict(&pgconn.PgError{Code: "23P01"}))
	assert.True(t, httperr.IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.True(t, httperr.IsExclusionConflict(
		fmt.Errorf("create: %w", &pgconn.PgError{Code: "23P01"}),
	))

	assert.False(t, httperr.IsExclusionConflict(&pgconn.PgError{Code: "40001"}))
	assert.False(t, httperr.IsExclusionConflict(errors.New("connection reset")))
	assert.False(t, httperr.IsExclusionConflict(nil))
}

func TestWriteEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t,
		`{"error_code":"invalid_credentials","message":"Invalid username or password."}`,
		w.Body.String(),
	)
}
