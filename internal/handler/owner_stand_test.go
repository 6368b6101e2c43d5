package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexToRowLabel(t *testing.T) {
	cases := map[int]string{
		0:  "A",
		1:  "B",
		25: "Z",
		26: "AA",
		27: "AB",
		51: "AZ",
		52: "BA",
	}
	for in, want := range cases {
		assert.Equal(t, want, indexToRowLabel(in), "index %d", in)
	}
	assert.Equal(t, "", indexToRowLabel(-1))
}

func TestValidStandType(t *testing.T) {
	got, ok := validStandType("")
	assert.True(t, ok)
	assert.Equal(t, "STANDARD", got)

	got, ok = validStandType(" premium ")
	assert.True(t, ok)
	assert.Equal(t, "PREMIUM", got)

	_, ok = validStandType("DELUXE")
	assert.False(t, ok)
}
