package football

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/gridiron/internal/randutil"
)

func TestChooseAction_DeepFourthDownPunts(t *testing.T) {
	for _, ytd := range []int{56, 60, 80, 100} {
		rng := randutil.New(int64(ytd))
		ref := randutil.New(int64(ytd))

		assert.Equal(t, Punt, ChooseAction(rng, 4, 10, ytd))
		// no draw was taken from the stream
		assert.Equal(t, ref.Uint64(), rng.Uint64())
	}
}

func countActions(t *testing.T, down, ytd, n int) map[Action]int {
	t.Helper()
	rng := randutil.New(99)
	counts := map[Action]int{}
	for i := 0; i < n; i++ {
		counts[ChooseAction(rng, down, 10, ytd)]++
	}
	return counts
}

func TestChooseAction_EarlyDownsRunOrPass(t *testing.T) {
	const n = 10000
	for down := 1; down <= 3; down++ {
		counts := countActions(t, down, 70, n)
		require.Len(t, counts, 2)
		assert.InDelta(t, 0.5, float64(counts[Run])/n, 0.03)
		assert.InDelta(t, 0.5, float64(counts[Pass])/n, 0.03)
	}
}

func TestChooseAction_FieldGoalRange(t *testing.T) {
	const n = 20000
	counts := countActions(t, 4, 30, n)
	assert.Zero(t, counts[Punt])
	assert.InDelta(t, 0.75, float64(counts[FieldGoal])/n, 0.02)
	assert.InDelta(t, 0.125, float64(counts[Run])/n, 0.02)
}

func TestChooseAction_BoundaryZone(t *testing.T) {
	const n = 20000
	for _, ytd := range []int{45, 50, 55} {
		counts := countActions(t, 4, ytd, n)
		assert.InDelta(t, 0.50, float64(counts[FieldGoal])/n, 0.02, "ytd=%d", ytd)
		assert.InDelta(t, 0.15, float64(counts[Punt])/n, 0.02, "ytd=%d", ytd)
		assert.InDelta(t, 0.35, float64(counts[Run]+counts[Pass])/n, 0.02, "ytd=%d", ytd)
	}
}

func TestChooseAction_GoalLineGoesForIt(t *testing.T) {
	for _, ytd := range []int{1, 3, 5} {
		counts := countActions(t, 4, ytd, 500)
		assert.Zero(t, counts[FieldGoal])
		assert.Zero(t, counts[Punt])
	}
}
