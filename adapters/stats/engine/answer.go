package engine

import "math"

const (
	answerRelativeTolerance = 0.05
	answerMinimumTolerance  = 0.1
)

// AnswerCheck is the outcome of comparing a typed answer with the known one
type AnswerCheck struct {
	Correct   bool    `json:"correct"`
	Answer    float64 `json:"answer"`
	Expected  float64 `json:"expected"`
	Tolerance float64 `json:"tolerance"`
}

// Tolerance is 5% of the correct value, never less than 0.1
func Tolerance(correct float64) float64 {
	return math.Max(math.Abs(correct)*answerRelativeTolerance, answerMinimumTolerance)
}

// CheckAnswer reports whether user is within tolerance of correct
func CheckAnswer(user, correct float64) bool {
	return math.Abs(user-correct) <= Tolerance(correct)
}

// Check is CheckAnswer with the comparison details attached
func Check(user, correct float64) AnswerCheck {
	return AnswerCheck{
		Correct:   CheckAnswer(user, correct),
		Answer:    user,
		Expected:  correct,
		Tolerance: Tolerance(correct),
	}
}
