package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"Hydro", "Solar"}, "Solar"))
	assert.False(t, Contains([]string{"Hydro", "Solar"}, "Wind"))
	assert.False(t, Contains(nil, "Wind"))
}

func TestSortedUnique(t *testing.T) {
	got := SortedUnique([]string{"Wind", "Hydro", "Wind", "Bioenergy", "Hydro"})
	assert.Equal(t, []string{"Bioenergy", "Hydro", "Wind"}, got)
	assert.Empty(t, SortedUnique(nil))
}

func TestToFloat(t *testing.T) {
	v, ok, err := ToFloat(" 12.5 ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok, err = ToFloat("")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ToFloat("NaN")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ToFloat("12,5kW")
	assert.Error(t, err)

	for _, cell := range []string{"inf", "Infinity", "-inf", "+Inf", "1e400"} {
		_, ok, err = ToFloat(cell)
		assert.Error(t, err, cell)
		assert.False(t, ok, cell)
	}
}
