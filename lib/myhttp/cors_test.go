package myhttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	sut := CORS([]string{"http://localhost:3000", " https://shop.example.com/ "}, next)

	t.Run("Allowed origin", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		request.Header.Set("Origin", "https://shop.example.com")
		response := httptest.NewRecorder()

		sut.ServeHTTP(response, request)

		assert.Equal(t, http.StatusTeapot, response.Code)
		assert.Equal(t, "https://shop.example.com", response.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", response.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Unknown origin", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		request.Header.Set("Origin", "http://evil.example.com")
		response := httptest.NewRecorder()

		sut.ServeHTTP(response, request)

		assert.Equal(t, http.StatusTeapot, response.Code)
		assert.Empty(t, response.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodOptions, "/api/basket", nil)
		request.Header.Set("Origin", "http://localhost:3000")
		request.Header.Set("Access-Control-Request-Method", "POST")
		response := httptest.NewRecorder()

		sut.ServeHTTP(response, request)

		assert.Equal(t, http.StatusNoContent, response.Code)
		assert.Equal(t, "http://localhost:3000", response.Header().Get("Access-Control-Allow-Origin"))
	})
}
