package bridge

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_IdlePollsFalse(t *testing.T) {
	var s Slot[int]

	assert.False(t, s.Pending())
	_, _, ok := s.Poll()
	assert.False(t, ok)
}

func TestSlot_DeliversExactlyOnce(t *testing.T) {
	var s Slot[int]

	ch := s.start()
	assert.True(t, s.Pending())

	// Not finished yet: polls stay false without blocking.
	_, _, ok := s.Poll()
	assert.False(t, ok)
	assert.True(t, s.Pending())

	ch <- outcome[int]{value: 42}

	v, err, ok := s.Poll()
	require.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	// The terminal value was consumed; the slot is idle again.
	assert.False(t, s.Pending())
	_, _, ok = s.Poll()
	assert.False(t, ok)
}

func TestSlot_DeliversError(t *testing.T) {
	var s Slot[string]

	ch := s.start()
	boom := errors.New("boom")
	ch <- outcome[string]{err: boom}

	v, err, ok := s.Poll()
	require.True(t, ok)
	assert.Empty(t, v)
	assert.Same(t, boom, err)
}

func TestSlot_RestartSupersedes(t *testing.T) {
	var s Slot[int]

	first := s.start()
	second := s.start()

	// The superseded task completes into its abandoned channel; the buffered
	// send must not block it, and its result must never surface.
	done := make(chan struct{})
	go func() {
		first <- outcome[int]{value: 1}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("send to abandoned channel blocked")
	}

	_, _, ok := s.Poll()
	assert.False(t, ok, "superseded result leaked")

	second <- outcome[int]{value: 2}
	v, _, ok := s.Poll()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}
