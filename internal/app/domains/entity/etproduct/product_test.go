package etproduct

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapePrice(t *testing.T) {
	p, ok := ShapePrice("round")
	assert.True(t, ok)
	assert.Equal(t, 2.50, p)

	p, ok = ShapePrice("square")
	assert.True(t, ok)
	assert.Equal(t, 2.00, p)

	_, ok = ShapePrice("hexagon")
	assert.False(t, ok)
}
