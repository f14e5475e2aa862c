package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-payroll/internal/config"
	"go-payroll/internal/notification"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("database reachable", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		r := gin.New()
		r.GET("/health", healthHandler(db))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"up"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		r := gin.New()
		r.GET("/health", healthHandler(db))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "Database unavailable")
	})
}

func TestNewNotifier(t *testing.T) {
	t.Run("disabled smtp logs only", func(t *testing.T) {
		n, err := newNotifier(config.SMTPConfig{}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &notification.LogNotifier{}, n)
	})

	t.Run("enabled smtp", func(t *testing.T) {
		n, err := newNotifier(config.SMTPConfig{Enabled: true, Host: "smtp.local", Port: 25, From: "payroll@acme.test"}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &notification.SMTPNotifier{}, n)
	})
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(&config.Config{App: config.AppConfig{Env: "production"}})
	require.NoError(t, err)
	assert.NotNil(t, l)
}
