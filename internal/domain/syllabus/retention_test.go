package syllabus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetention_NeverStudiedIsZero(t *testing.T) {
	now := time.Now().UTC()
	assert.Equal(t, 0, Retention(nil, 1.0, now))
}

func TestRetention_JustStudiedIsFull(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 100, Retention(&now, 1.0, now))
}

func TestRetention_BoundsAndMonotonicity(t *testing.T) {
	studied := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	prev := 101
	for days := 0; days <= 30; days++ {
		now := studied.AddDate(0, 0, days)
		score := Retention(&studied, 1.0, now)

		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
		assert.LessOrEqual(t, score, prev, "retention must not increase at day %d", days)
		prev = score
	}

	// After a month at strength 1 nothing is left.
	assert.Equal(t, 0, prev)
}

func TestRetention_KnownValues(t *testing.T) {
	studied := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// One day at strength 1: 100*e^-1 = 36.8 -> 37.
	oneDay := studied.Add(24 * time.Hour)
	assert.Equal(t, 37, Retention(&studied, 1.0, oneDay))

	// One day at strength 2: 100*e^-0.5 = 60.6 -> 61.
	assert.Equal(t, 61, Retention(&studied, 2.0, oneDay))

	// Half a day at strength 1: 100*e^-0.5 -> 61.
	halfDay := studied.Add(12 * time.Hour)
	assert.Equal(t, 61, Retention(&studied, 1.0, halfDay))
}

func TestRetention_ClockSkewUsesAbsoluteDelta(t *testing.T) {
	// A study timestamp slightly in the future of now must not blow up or
	// exceed the bounds.
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour)

	score := Retention(&future, 1.0, now)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
	assert.Less(t, score, 100) // two hours of decay, either direction
}

func TestRetention_NonPositiveStrengthTreatedAsOne(t *testing.T) {
	studied := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	oneDay := studied.Add(24 * time.Hour)

	assert.Equal(t, Retention(&studied, 1.0, oneDay), Retention(&studied, 0, oneDay))
	assert.Equal(t, Retention(&studied, 1.0, oneDay), Retention(&studied, -3, oneDay))
}

func TestClassifyRetention_Bands(t *testing.T) {
	assert.Equal(t, BandHealthy, ClassifyRetention(100))
	assert.Equal(t, BandHealthy, ClassifyRetention(80))
	assert.Equal(t, BandFading, ClassifyRetention(79))
	assert.Equal(t, BandFading, ClassifyRetention(50))
	assert.Equal(t, BandAtRisk, ClassifyRetention(49))
	assert.Equal(t, BandAtRisk, ClassifyRetention(0))
}
