package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func TestStaysClosedOnSuccess(t *testing.T) {
	cb := New(3, time.Minute)

	for i := 0; i < 10; i++ {
		err := cb.Execute(func() error { return nil }, nil)
		assert.NoError(t, err)
	}
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errBoom }, nil)
		assert.ErrorIs(t, err, errBoom)
	}
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(3, time.Minute)

	cb.Execute(func() error { return errBoom }, nil)
	cb.Execute(func() error { return errBoom }, nil)
	cb.Execute(func() error { return nil }, nil)
	cb.Execute(func() error { return errBoom }, nil)
	cb.Execute(func() error { return errBoom }, nil)

	assert.Equal(t, StateClosed, cb.GetState())
}

func TestOpenRunsFallback(t *testing.T) {
	cb := New(1, time.Minute)

	cb.Execute(func() error { return errBoom }, nil)
	assert.Equal(t, StateOpen, cb.GetState())

	called := false
	err := cb.Execute(func() error {
		t.Fatal("fn must not run while open")
		return nil
	}, func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestOpenWithoutFallback(t *testing.T) {
	cb := New(1, time.Minute)

	cb.Execute(func() error { return errBoom }, nil)
	err := cb.Execute(func() error { return nil }, nil)
	assert.ErrorIs(t, err, ErrOpen)
}

func TestHalfOpenProbe(t *testing.T) {
	cb := New(1, 10*time.Millisecond)

	cb.Execute(func() error { return errBoom }, nil)
	assert.Equal(t, StateOpen, cb.GetState())

	time.Sleep(20 * time.Millisecond)

	// First call after the cooldown is the probe; success closes the breaker.
	err := cb.Execute(func() error { return nil }, nil)
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestHalfOpenProbeFailureReopens(t *testing.T) {
	cb := New(3, 10*time.Millisecond)

	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return errBoom }, nil)
	}
	time.Sleep(20 * time.Millisecond)

	err := cb.Execute(func() error { return errBoom }, nil)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, StateOpen, cb.GetState())
}
