package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Month(t *testing.T) {
	p, err := Parse("2025-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), p.End)
}

func TestParse_Range(t *testing.T) {
	p, err := Parse("2025-01-15..2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), p.End)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("not-a-period")
	require.Error(t, err)

	_, err = Parse("2025-03-10..2025-01-15")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start")
}

func TestContains_EndDayInclusive(t *testing.T) {
	p := Month(2025, time.February)

	assert.True(t, p.Contains(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)))
}

func TestMonths(t *testing.T) {
	assert.Equal(t, 1, Month(2025, time.July).Months())
	assert.Equal(t, 12, Year(2025).Months())

	p, err := Parse("2025-01-31..2025-02-01")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Months())
}

func TestString(t *testing.T) {
	assert.Equal(t, "2025-01-01..2025-01-31", Month(2025, time.January).String())
}
