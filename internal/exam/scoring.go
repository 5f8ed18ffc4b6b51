package exam

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ScoreResult is the outcome of scoring one submission against an exam's
// questions.
type ScoreResult struct {
	TotalScore int
	MaxScore   int
	Percentage decimal.Decimal
	// QuestionScores holds the points awarded per question: the question's
	// point value when answered correctly, otherwise 0. Open questions are
	// always 0.
	QuestionScores map[int64]int
}

// ScoreSubmission scores submitted answers against the question list.
// Open questions are excluded from both sums; a missing submission counts as
// incorrect. ScoreSubmission is deterministic and touches no external state.
func ScoreSubmission(questions []Question, answers map[int64]string) ScoreResult {
	result := ScoreResult{
		QuestionScores: make(map[int64]int, len(questions)),
	}
	for _, q := range questions {
		if q.Type == QuestionTypeOpen {
			result.QuestionScores[q.ID] = 0
			continue
		}
		result.MaxScore += q.Points

		answer, ok := answers[q.ID]
		if ok && isCorrectAnswer(answer, q.CorrectAnswer) {
			result.TotalScore += q.Points
			result.QuestionScores[q.ID] = q.Points
		} else {
			result.QuestionScores[q.ID] = 0
		}
	}
	result.Percentage = Percentage(result.TotalScore, result.MaxScore)
	return result
}

func isCorrectAnswer(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}

// Percentage computes totalScore*100/maxScore rounded to two decimal places,
// half up. A zero maxScore yields 0.
func Percentage(totalScore, maxScore int) decimal.Decimal {
	if maxScore <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(totalScore)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(maxScore))).
		Round(2)
}
