package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitListParsesCommaSeparatedNames(t *testing.T) {
	assert.Equal(t, []string{"RP001", "RP003"}, splitList("RP001, RP003"))
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("   "))
	assert.Equal(t, []string{"vendor"}, splitList("vendor"))
}
