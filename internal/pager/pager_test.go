package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThresholdConfiguredWins(t *testing.T) {
	assert.Equal(t, 50, Threshold(50, 1))
}

func TestRunWithCatPager(t *testing.T) {
	t.Setenv("PAGER", "cat")
	assert.NoError(t, Run("one line\n"))
}
