package watchface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferFitsExactly(t *testing.T) {
	buffer := NewBuffer(13)
	assert.False(t, buffer.Set("Mon. 10/19/26"))
	assert.Equal(t, "Mon. 10/19/26", buffer.String())
}

func TestBufferTruncatesAtCapacity(t *testing.T) {
	buffer := NewBuffer(8)
	assert.True(t, buffer.Set("123456789"))
	assert.Equal(t, "12345678", buffer.String())
}

func TestBufferTruncatesOnRuneBoundary(t *testing.T) {
	buffer := NewBuffer(4)
	// "aé" is 3 bytes; the following "é" would straddle the limit.
	assert.True(t, buffer.Set("aéé"))
	assert.Equal(t, "aé", buffer.String())
}

func TestBufferOverwritesInPlace(t *testing.T) {
	buffer := NewBuffer(15)
	buffer.Set("done charging")
	buffer.Set("5% charged")
	assert.Equal(t, "5% charged", buffer.String())
}

func TestDisplayStateCapacities(t *testing.T) {
	state := NewDisplayState()
	for _, field := range Fields {
		stored, truncated := state.Set(field, strings.Repeat("x", 64))
		assert.True(t, truncated, field.String())
		assert.Len(t, stored, field.Capacity(), field.String())
		assert.Equal(t, stored, state.Text(field))
	}
}

func TestDisplayStateLongestStringsFit(t *testing.T) {
	state := NewDisplayState()
	cases := map[Field]string{
		FieldDate:       "Wed. 12/31/99",
		FieldTime:       "23:59",
		FieldBattery:    "done charging",
		FieldConnection: "BT: disconnected",
	}
	for field, text := range cases {
		_, truncated := state.Set(field, text)
		assert.False(t, truncated, field.String())
	}
}

func TestDisplayStateUnknownField(t *testing.T) {
	state := NewDisplayState()
	stored, truncated := state.Set(Field(99), "x")
	assert.Empty(t, stored)
	assert.False(t, truncated)
	assert.Empty(t, state.Text(Field(99)))
}
