package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/mvannote/ashvale/internal/game/progression"
)

func TestLevel_ZeroBelowFirstThreshold(t *testing.T) {
	assert.Equal(t, 0, progression.Level(0))
	assert.Equal(t, 0, progression.Level(1))
	assert.Equal(t, 0, progression.Level(499))
	// The first threshold is passed at 510 (10*1^3 + 500), not 500.
	assert.Equal(t, 0, progression.Level(509))
	assert.Equal(t, 1, progression.Level(510))
}

func TestLevel_EarlyCurveThresholds(t *testing.T) {
	// Level k is reached exactly at 10*k^3 + 500.
	cases := []struct {
		xp    int
		level int
	}{
		{579, 1},
		{580, 2},
		{270499, 29},
		{270500, 30},
		{298409, 30},
		{298410, 31},
		{507029, 36},
		{507030, 37},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, progression.Level(tc.xp), "xp=%d", tc.xp)
	}
}

func TestLevel_CurveSeam(t *testing.T) {
	// The cubic segment resolves everything up to and including 540500.
	assert.Equal(t, 37, progression.Level(540499))
	assert.Equal(t, 37, progression.Level(540500))
	// One xp later the quartic segment takes over without skipping a level.
	assert.Equal(t, 38, progression.Level(540501))
}

func TestLevel_LateCurveThresholds(t *testing.T) {
	// 39^4/5 + 108500 = 571188
	assert.Equal(t, 38, progression.Level(571187))
	assert.Equal(t, 39, progression.Level(571188))
	// 50^4/5 + 108500 = 1358500
	assert.Equal(t, 49, progression.Level(1358499))
	assert.Equal(t, 50, progression.Level(1358500))
}

func TestNextLevel_OneBeforeThreshold(t *testing.T) {
	level, remaining := progression.NextLevel(509)
	assert.Equal(t, 0, level)
	assert.Equal(t, 1, remaining)

	level, remaining = progression.NextLevel(270499)
	assert.Equal(t, 29, level)
	assert.Equal(t, 1, remaining)

	level, remaining = progression.NextLevel(571187)
	assert.Equal(t, 38, level)
	assert.Equal(t, 1, remaining)
}

func TestNextLevel_UsesQuarticAtLevelThirty(t *testing.T) {
	// Level 30 is reached at 270500; the gap to 31 is quoted off the late curve.
	level, remaining := progression.NextLevel(270500)
	assert.Equal(t, 30, level)
	// 31^4/5 + 108500 = 293204
	assert.Equal(t, 293204-270500, remaining)
}

func TestLevel_MonotonicProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		xp := rapid.IntRange(0, 2_000_000).Draw(t, "xp")
		gain := rapid.IntRange(0, 100_000).Draw(t, "gain")

		before := progression.Level(xp)
		after := progression.Level(xp + gain)
		assert.GreaterOrEqual(t, after, before)
		assert.GreaterOrEqual(t, before, 0)
	})
}

func TestNextLevel_RemainingPositiveProperty(t *testing.T) {
	// Below level 30 the cubic gap applies; past the seam the quartic gap
	// applies. Both regions always leave a positive distance to the next level.
	rapid.Check(t, func(t *rapid.T) {
		xp := rapid.OneOf(
			rapid.IntRange(0, 270499),
			rapid.IntRange(540501, 5_000_000),
		).Draw(t, "xp")

		_, remaining := progression.NextLevel(xp)
		assert.Greater(t, remaining, 0, "xp=%d", xp)
	})
}

func TestNextLevel_CubicBandQuarticGapCanCloseOut(t *testing.T) {
	// Levels 30 through 37 are reached on the cubic segment while the gap is
	// already quoted off the quartic thresholds. Once xp passes a quartic
	// threshold the remaining distance closes to zero or goes negative until
	// the cubic level catches up.
	level, remaining := progression.NextLevel(293204)
	assert.Equal(t, 30, level)
	assert.Equal(t, 0, remaining)

	level, remaining = progression.NextLevel(295000)
	assert.Equal(t, 30, level)
	assert.Negative(t, remaining)
}

func TestLevel_NoSkipAcrossSeam(t *testing.T) {
	prev := progression.Level(540490)
	for xp := 540491; xp <= 540520; xp++ {
		cur := progression.Level(xp)
		diff := cur - prev
		assert.True(t, diff == 0 || diff == 1, "level jumped by %d at xp=%d", diff, xp)
		prev = cur
	}
}
