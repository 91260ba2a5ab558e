package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seenAsAdmin(t *testing.T, token, supplied string) bool {
	t.Helper()

	var got bool
	r := mux.NewRouter()
	r.Use(AdminDetect(token))
	r.HandleFunc("/ping", func(w http.ResponseWriter, req *http.Request) {
		got = IsAdmin(req.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if supplied != "" {
		req.Header.Set(AdminHeader, supplied)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)

	return got
}

func TestAdminDetect(t *testing.T) {
	assert.True(t, seenAsAdmin(t, "secret", "secret"))
	assert.False(t, seenAsAdmin(t, "secret", "wrong"))
	assert.False(t, seenAsAdmin(t, "secret", ""))

	// Пустой настроенный токен полностью отключает административный доступ
	assert.False(t, seenAsAdmin(t, "", "secret"))
	assert.False(t, seenAsAdmin(t, "", ""))
}

func TestIsAdminDefaultsFalse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsAdmin(req.Context()))
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	statuses := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	// Burst 2 пропускает первые два запроса, дальше 429
	require.Equal(t, http.StatusOK, statuses[0])
	require.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusTooManyRequests, statuses[2])
	assert.Equal(t, http.StatusTooManyRequests, statuses[3])

	// Другой IP не делит лимит с первым
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
