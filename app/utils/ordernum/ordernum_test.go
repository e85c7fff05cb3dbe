package ordernum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextMatchesPattern(t *testing.T) {
	g := NewGenerator()
	for i := 0; i < 200; i++ {
		n := g.Next()
		assert.True(t, Valid(n), n)
	}
}

func TestNextPadsBothParts(t *testing.T) {
	g := &Generator{
		Now:    func() time.Time { return time.UnixMilli(1_700_000_000_042) },
		Random: func(int) int { return 7 },
	}
	assert.Equal(t, "KH000042007", g.Next())
}

func TestValid(t *testing.T) {
	assert.False(t, Valid("KH12345678"))
	assert.False(t, Valid("XX123456789"))
	assert.False(t, Valid("KH12345678a"))
	assert.True(t, Valid("KH123456789"))
}
