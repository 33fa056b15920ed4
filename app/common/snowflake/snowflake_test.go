package snowflake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRunIDIsIncreasing(t *testing.T) {
	require.NoError(t, SetNodeID(3))
	prev := NextRunID()
	for i := 0; i < 100; i++ {
		next := NextRunID()
		assert.Greater(t, next, prev)
		prev = next
	}
}
