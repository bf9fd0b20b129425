package myerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	myErr := fmt.Errorf("my error")

	testCases := []struct {
		name       string
		in         error
		httpStatus int
		errorText  string
		message    string
	}{
		{
			name:       "No http error",
			in:         myErr,
			httpStatus: 500,
			errorText:  "my error",
			message:    "Internal Server Error",
		},
		{
			name:       "Invalid input error",
			in:         NewInvalidInputError(myErr),
			httpStatus: 400,
			errorText:  "status: 400, err: my error",
			message:    "my error",
		},
		{
			name:       "Invalid input errorf",
			in:         NewInvalidInputErrorf("%s: %d", myErr.Error(), 123),
			httpStatus: 400,
			errorText:  "status: 400, err: my error: 123",
			message:    "my error: 123",
		},
		{
			name:       "Authentication error",
			in:         NewAuthenticationError(myErr),
			httpStatus: 401,
			errorText:  "status: 401, err: my error",
			message:    "my error",
		},
		{
			name:       "Not found error",
			in:         NewNotFoundError(myErr),
			httpStatus: 404,
			errorText:  "status: 404, err: my error",
			message:    "my error",
		},
		{
			name:       "Not found errorf",
			in:         NewNotFoundErrorf("product %d not found", 999),
			httpStatus: 404,
			errorText:  "status: 404, err: product 999 not found",
			message:    "product 999 not found",
		},
		{
			name:       "UnsupportedMedia error",
			in:         NewUnsupportedMediaTypeError(myErr),
			httpStatus: 415,
			errorText:  "status: 415, err: my error",
			message:    "my error",
		},
		{
			name:       "Internal error",
			in:         NewInternalError(myErr),
			httpStatus: 500,
			errorText:  "status: 500, err: my error",
			message:    "Internal Server Error",
		},
		{
			name:       "Not implemented error",
			in:         NewNotImplementedError(myErr),
			httpStatus: 501,
			errorText:  "status: 501, err: my error",
			message:    "Not Implemented",
		},
		{
			name:       "Not available error",
			in:         NewUnavailableError(myErr),
			httpStatus: 503,
			errorText:  "status: 503, err: my error",
			message:    "Service Unavailable",
		},
		{
			name:       "Wrapped not found error",
			in:         fmt.Errorf("loading: %w", NewNotFoundError(myErr)),
			httpStatus: 404,
			errorText:  "loading: status: 404, err: my error",
			message:    "my error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.httpStatus, GetHTTPStatus(tc.in))
			assert.Equal(t, tc.errorText, tc.in.Error())
			assert.Equal(t, tc.message, GetMessage(tc.in))
		})
	}

	t.Run("Cause is preserved", func(t *testing.T) {
		sentinel := errors.New("sentinel")
		err := NewInvalidInputError(fmt.Errorf("saving: %w", sentinel))
		assert.True(t, errors.Is(err, sentinel))
	})
}
