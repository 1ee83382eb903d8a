// Package rating implements the incremental pairwise rating update.
package rating

import "math"

const (
	// K is the fixed update step. The model is deliberately not adaptive.
	K = 32
	// InitialScore seeds every item when a session starts.
	InitialScore = 1500.0
)

// Expected returns the winner's expected outcome under the logistic
// model: 1 / (1 + 10^((loser-winner)/400)).
func Expected(winner, loser float64) float64 {
	return 1 / (1 + math.Pow(10, (loser-winner)/400))
}

// Update applies one win/loss outcome and returns the new scores for
// winner and loser. The winner gains exactly what the loser loses; a
// win never lowers the winner and a loss never raises the loser.
// Scores are unbounded, there is no clamping.
func Update(winner, loser float64) (newWinner, newLoser float64) {
	delta := K * (1 - Expected(winner, loser))
	return winner + delta, loser - delta
}
