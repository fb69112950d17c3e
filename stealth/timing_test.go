package stealth

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRandomDelayStaysWithinBounds(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		d := RandomDelay(50, 200)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.LessOrEqual(t, d, 200*time.Millisecond)
	}
}

func TestRandomDelayClampsNegativeMin(t *testing.T) {
	t.Parallel()

	for i := 0; i < 20; i++ {
		d := RandomDelay(-10, 5)
		assert.GreaterOrEqual(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, 5*time.Millisecond)
	}
}

func TestRandomDelayInvertedBounds(t *testing.T) {
	t.Parallel()

	// max below min collapses to the min value.
	assert.Equal(t, 100*time.Millisecond, RandomDelay(100, 10))
}

func TestRandomNearbyRune(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		got := randomNearbyRune(r, 'q')
		assert.GreaterOrEqual(t, got, 'a')
		assert.LessOrEqual(t, got, 'z')
	}

	assert.Equal(t, 'x', randomNearbyRune(r, '7'))
	assert.Equal(t, 'x', randomNearbyRune(r, 'Q'))
}

func TestScriptGuardsAgainstDoubleApply(t *testing.T) {
	t.Parallel()

	// The payload must bail out when re-evaluated on the same document so
	// wrapped natives are not wrapped twice.
	assert.Contains(t, Script, "__stealthiumApplied")
	assert.Contains(t, Script, "navigator, 'webdriver'")
}
