package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorStatusCode(t *testing.T) {
	testCases := []struct {
		Name     string
		Err      error
		Expected int
	}{
		{Name: "sentinel", Err: ErrInvalidHost, Expected: http.StatusForbidden},
		{Name: "wrapped sentinel", Err: fmt.Errorf("calling checkout api: %w", ErrBadGateway), Expected: http.StatusBadGateway},
		{Name: "unknown error", Err: errors.New("boom"), Expected: http.StatusInternalServerError},
		{Name: "missing payment details", Err: ErrMissingPaymentDetails, Expected: http.StatusBadRequest},
		{Name: "breaker open", Err: ErrServiceUnavailable, Expected: http.StatusServiceUnavailable},
		{Name: "superseded replay", Err: ErrOrderStatusSuperseded, Expected: http.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, GetErrorStatusCode(tc.Err))
		})
	}
}

func TestGetErrorStatusCode_SeveralSentinels(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrBadGateway, ErrServiceUnavailable)
	reversed := fmt.Errorf("%w: %w", ErrServiceUnavailable, ErrBadGateway)

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusServiceUnavailable, GetErrorStatusCode(err))
		assert.Equal(t, http.StatusServiceUnavailable, GetErrorStatusCode(reversed))
	}
}
