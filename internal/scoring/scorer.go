package scoring

import "math"

// Score formula constants. The formula is an exact numeric contract used by
// receipts and the leaderboard, not an approximation.
const (
	PointsPerBot    = 3333
	WrongGuessCost  = 1000
	TimePenaltyRate = 100 // per minute of elapsed time
	MaxScore        = 100000
)

// CalculateScore converts round detection stats into a single score:
// base = max(0, correct*3333 - wrong*1000), minus 100 points per elapsed
// minute, clamped to [0, 100000] and floored.
func CalculateScore(correctBots, wrongGuesses, totalTimeSeconds int) int {
	base := correctBots*PointsPerBot - wrongGuesses*WrongGuessCost
	if base < 0 {
		base = 0
	}

	timePenalty := float64(totalTimeSeconds) / 60.0 * TimePenaltyRate
	final := math.Floor(float64(base) - timePenalty)

	if final < 0 {
		return 0
	}
	if final > MaxScore {
		return MaxScore
	}
	return int(final)
}

// Accuracy returns the detection accuracy percentage, 0 when no bots were
// present.
func Accuracy(correctGuesses, totalBotted int) float64 {
	if totalBotted == 0 {
		return 0
	}
	return float64(correctGuesses) / float64(totalBotted) * 100
}

// Grade is the letter grade shown on the results screen.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// GradeCutoffs holds the accuracy thresholds for each grade. Kept as a
// value so a screen could configure its own set, though every screen ships
// with the canonical defaults.
type GradeCutoffs struct {
	S float64
	A float64
	B float64
	C float64
}

// DefaultGradeCutoffs is the single canonical threshold set applied
// uniformly across all result views.
func DefaultGradeCutoffs() GradeCutoffs {
	return GradeCutoffs{S: 90, A: 75, B: 50, C: 25}
}

// GradeFor maps an accuracy percentage to a letter grade.
func (c GradeCutoffs) GradeFor(accuracy float64) Grade {
	switch {
	case accuracy >= c.S:
		return GradeS
	case accuracy >= c.A:
		return GradeA
	case accuracy >= c.B:
		return GradeB
	case accuracy >= c.C:
		return GradeC
	default:
		return GradeD
	}
}
