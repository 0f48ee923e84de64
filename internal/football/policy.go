package football

import rand "math/rand/v2"

// ChooseAction picks the play call for the current down and distance.
//
// Early downs are a coin flip between running and passing. Fourth down is a
// fixed heuristic keyed on field position:
//
//   - more than 55 yards out: punt
//   - inside (5, 45): kick with probability 0.75, otherwise go for it
//   - [45, 55]: go for it 0.35, kick 0.50, punt 0.15
//   - 5 yards or closer: go for it
//
// The deep-punt branch consumes no randomness.
func ChooseAction(rng *rand.Rand, down, yardsToFirstDown, yardsToTouchdown int) Action {
	if down == 4 {
		switch {
		case yardsToTouchdown > 55:
			return Punt
		case yardsToTouchdown > 5 && yardsToTouchdown < 45:
			if rng.Float64() < 0.75 {
				return FieldGoal
			}
			return runOrPass(rng)
		case yardsToTouchdown >= 45 && yardsToTouchdown <= 55:
			r := rng.Float64()
			switch {
			case r < 0.35:
				return runOrPass(rng)
			case r < 0.85:
				return FieldGoal
			default:
				return Punt
			}
		}
	}
	return runOrPass(rng)
}

func runOrPass(rng *rand.Rand) Action {
	if rng.IntN(2) == 0 {
		return Run
	}
	return Pass
}
