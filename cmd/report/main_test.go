package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	t.Run("both bounds", func(t *testing.T) {
		start, end, err := parseWindow("2025-01-01", "2025-01-31")
		require.NoError(t, err)
		require.NotNil(t, start)
		require.NotNil(t, end)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *start)
		// End bound covers the whole final day.
		assert.Equal(t, time.Date(2025, 1, 31, 23, 59, 59, 999999999, time.UTC), *end)
	})

	t.Run("open window", func(t *testing.T) {
		start, end, err := parseWindow("", "")
		require.NoError(t, err)
		assert.Nil(t, start)
		assert.Nil(t, end)
	})

	t.Run("start only", func(t *testing.T) {
		start, end, err := parseWindow("2025-03-15", "")
		require.NoError(t, err)
		require.NotNil(t, start)
		assert.Nil(t, end)
	})

	t.Run("malformed start", func(t *testing.T) {
		_, _, err := parseWindow("15/03/2025", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse start date")
	})

	t.Run("inverted window", func(t *testing.T) {
		_, _, err := parseWindow("2025-02-01", "2025-01-01")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after end date")
	})
}
