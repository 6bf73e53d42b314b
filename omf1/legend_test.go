package omf1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickNamesLegend_PrefersUniqueNonEmptyShortest(t *testing.T) {
	legends := []StringLegend{
		{Name: "codes", Values: []string{"a", "b", ""}},
		{Name: "names", Values: []string{"x", "y", "z"}},
	}

	// Both have three unique values, but "names" has no empties.
	assert.Equal(t, 1, pickNamesLegend(legends))
}

func TestPickNamesLegend_UniquenessBeatsEmptiness(t *testing.T) {
	legends := []StringLegend{
		{Name: "dull", Values: []string{"a", "a", "a"}},
		{Name: "rich", Values: []string{"p", "q", ""}},
	}

	assert.Equal(t, 1, pickNamesLegend(legends))
}

func TestPickNamesLegend_ShortestBreaksRemainingTie(t *testing.T) {
	legends := []StringLegend{
		{Name: "long", Values: []string{"alpha", "beta"}},
		{Name: "short", Values: []string{"a", "b"}},
	}

	assert.Equal(t, 1, pickNamesLegend(legends))
}

func TestPickNamesLegend_FirstWinsFullTie(t *testing.T) {
	legends := []StringLegend{
		{Name: "one", Values: []string{"a", "b"}},
		{Name: "two", Values: []string{"c", "d"}},
	}

	assert.Equal(t, 0, pickNamesLegend(legends))
}

func TestPickNamesLegend_Empty(t *testing.T) {
	assert.Equal(t, -1, pickNamesLegend(nil))
}

func TestPickColorLegend_MostUniqueWins(t *testing.T) {
	legends := []ColorLegend{
		{Name: "flat", Values: [][3]uint8{{1, 1, 1}, {1, 1, 1}}},
		{Name: "varied", Values: [][3]uint8{{1, 0, 0}, {0, 1, 0}}},
	}

	assert.Equal(t, 1, pickColorLegend(legends))
	assert.Equal(t, -1, pickColorLegend(nil))
}
