package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateCircuitBreaker_TripsAfterFailures(t *testing.T) {
	cb := CreateCircuitBreaker("adyen-checkout")
	failing := func() ([]byte, error) { return nil, errors.New("upstream down") }

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(failing)
		assert.EqualError(t, err, "upstream down")
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() ([]byte, error) { return []byte("ok"), nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
