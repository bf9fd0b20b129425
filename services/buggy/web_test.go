package buggy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestBuggyService(t *testing.T) {
	router := mux.NewRouter()
	NewService().RegisterEndpoints(context.TODO(), router)

	testCases := []struct {
		path    string
		status  int
		message string
	}{
		{path: "/api/buggy/not-found", status: 404, message: "resource not found"},
		{path: "/api/buggy/bad-request", status: 400, message: "this is a bad request"},
		{path: "/api/buggy/unauthorised", status: 401, message: "not authorised"},
		{path: "/api/buggy/validation-error", status: 400, message: "one or more validation errors occurred"},
		{path: "/api/buggy/server-error", status: 500, message: "Internal Server Error"},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			// when
			request, err := http.NewRequest(http.MethodGet, tc.path, nil)
			assert.NoError(t, err)
			response := httptest.NewRecorder()
			router.ServeHTTP(response, request)

			// then
			assert.Equal(t, tc.status, response.Code)
			resp := validationErrorResponse{}
			assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
			assert.Equal(t, tc.status, resp.Status)
			assert.Equal(t, tc.message, resp.Message)
		})
	}

	t.Run("Validation error lists problems", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodGet, "/api/buggy/validation-error", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		resp := validationErrorResponse{}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.Equal(t, []string{"This is the first error"}, resp.Errors["Problem1"])
		assert.Equal(t, []string{"This is the second error"}, resp.Errors["Problem2"])
	})
}
