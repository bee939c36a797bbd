package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventDate(t *testing.T) {
	ts, err := ParseEventDate("2019-06-28T18:03:50+01:00")
	require.NoError(t, err)
	assert.Equal(t, int64(1561741430), ts)

	_, err = ParseEventDate("28/06/2019")
	assert.Error(t, err)
}
