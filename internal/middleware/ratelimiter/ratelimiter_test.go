package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowWithinCapacity(t *testing.T) {
	rl := New(1, 3, time.Hour)

	assert.True(t, rl.Allow("ip1"))
	assert.True(t, rl.Allow("ip1"))
	assert.True(t, rl.Allow("ip1"))
	assert.False(t, rl.Allow("ip1"), "bucket exhausted")
}

func TestIdentitiesAreIndependent(t *testing.T) {
	rl := New(1, 1, time.Hour)

	assert.True(t, rl.Allow("ip1"))
	assert.False(t, rl.Allow("ip1"))
	assert.True(t, rl.Allow("ip2"))
}

func TestRefill(t *testing.T) {
	rl := New(100, 1, time.Hour) // 100 tokens/sec

	assert.True(t, rl.Allow("ip1"))
	assert.False(t, rl.Allow("ip1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("ip1"), "bucket should have refilled")
}
