package football

import (
	rand "math/rand/v2"

	"github.com/lox/gridiron/internal/randutil"
)

const (
	// DefaultQBSkill is the quarterback rating used when a team has none.
	DefaultQBSkill = 0.03
	// MaxQBSkill is the largest rating that keeps the completion weight
	// non-negative.
	MaxQBSkill = 0.63
)

// passResults is the category order used by PassProbabilities.
var passResults = [4]ResultTag{ResultComplete, ResultIncomplete, ResultSack, ResultInterception}

// ClampQBSkill limits a rating to [0, MaxQBSkill].
func ClampQBSkill(qbSkill float64) float64 {
	return min(max(qbSkill, 0), MaxQBSkill)
}

// PassProbabilities returns the weights for complete, incomplete, sack and
// interception. The rating is added to the interception weight and taken away
// from the completion weight, so the vector always sums to one.
func PassProbabilities(qbSkill float64) [4]float64 {
	q := ClampQBSkill(qbSkill)
	complete := max(0, 0.60+(DefaultQBSkill-q))
	return [4]float64{complete, 0.30, 0.07, q}
}

// ResolvePlay turns a play call into yardage and a result.
func ResolvePlay(rng *rand.Rand, action Action, qbSkill float64) PlayOutcome {
	switch action {
	case Run:
		return PlayOutcome{Yards: randutil.TruncNormal(rng, 4, 2), Result: ResultRun}
	case Pass:
		return resolvePass(rng, qbSkill)
	case Punt:
		return PlayOutcome{Result: ResultPuntAttempt}
	case FieldGoal:
		return PlayOutcome{Result: ResultFieldGoalAttempt}
	default:
		panic("football: unknown action " + action.String())
	}
}

func resolvePass(rng *rand.Rand, qbSkill float64) PlayOutcome {
	switch result := drawPassResult(rng, qbSkill); result {
	case ResultComplete:
		return PlayOutcome{Yards: randutil.TruncNormal(rng, 10, 5), Result: result}
	case ResultSack:
		return PlayOutcome{Yards: -randutil.TruncNormal(rng, 5, 2), Result: result}
	default:
		return PlayOutcome{Result: result}
	}
}

func drawPassResult(rng *rand.Rand, qbSkill float64) ResultTag {
	probs := PassProbabilities(qbSkill)
	r := rng.Float64()
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if r < cumulative {
			return passResults[i]
		}
	}
	// float rounding can leave r just above the final cumulative weight
	return passResults[len(passResults)-1]
}

// FieldGoalProbability is the chance of converting a kick from the given
// field position. It degrades linearly with distance and floors at 0.3.
func FieldGoalProbability(yardsToTouchdown int) float64 {
	distance := 100 - yardsToTouchdown
	return max(0.3, 1-float64(distance)/100)
}

// AttemptFieldGoal kicks once.
func AttemptFieldGoal(rng *rand.Rand, yardsToTouchdown int) bool {
	return randutil.Bernoulli(rng, FieldGoalProbability(yardsToTouchdown))
}

// PuntDistance draws a punt length in yards.
func PuntDistance(rng *rand.Rand) int {
	return randutil.IntRange(rng, 30, 65)
}
