package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTargets_TrimsAndDropsEmpty(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, splitTargets(" A, B ,C"))
}

func TestSplitTargets_Empty(t *testing.T) {
	assert.Equal(t, []string{}, splitTargets(""))
}
