package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{Pending, Processing, true},
		{Pending, Confirmed, true},
		{Pending, Cancelled, true},
		{Processing, Shipped, true},
		{Processing, Cancelled, true},
		{Confirmed, Shipped, true},
		{Shipped, Delivered, true},

		{Pending, Shipped, false},
		{Pending, Delivered, false},
		{Confirmed, Cancelled, false},
		{Shipped, Cancelled, false},
		{Delivered, Pending, false},
		{Delivered, Cancelled, false},
		{Cancelled, Processing, false},
		{Shipped, Pending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTransitionErrors(t *testing.T) {
	assert.NoError(t, Transition(Pending, Processing))

	err := Transition(Delivered, Shipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = Transition(Pending, "misplaced")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminal(Delivered))
	assert.True(t, IsTerminal(Cancelled))
	assert.False(t, IsTerminal(Pending))
	assert.False(t, IsTerminal(Shipped))
	assert.False(t, IsTerminal("misplaced"))
}

func TestCancellable(t *testing.T) {
	assert.True(t, Cancellable(Pending))
	assert.True(t, Cancellable(Processing))
	assert.False(t, Cancellable(Confirmed))
	assert.False(t, Cancellable(Shipped))
	assert.False(t, Cancellable(Delivered))
	assert.False(t, Cancellable(Cancelled))
}
