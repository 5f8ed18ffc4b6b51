package exam

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestScoreSubmission(t *testing.T) {
	questions := []Question{
		{ID: 1, Type: QuestionTypeSingleChoice, Points: 5, CorrectAnswer: "A"},
		{ID: 2, Type: QuestionTypeSingleChoice, Points: 5, CorrectAnswer: "B"},
		{ID: 3, Type: QuestionTypeOpen, Points: 10, CorrectAnswer: "an essay"},
	}

	tests := []struct {
		name           string
		questions      []Question
		answers        map[int64]string
		wantTotal      int
		wantMax        int
		wantPercentage string
		wantScores     map[int64]int
	}{
		{
			name:           "all correct, open question excluded",
			questions:      questions,
			answers:        map[int64]string{1: "A", 2: "B", 3: "anything"},
			wantTotal:      10,
			wantMax:        10,
			wantPercentage: "100",
			wantScores:     map[int64]int{1: 5, 2: 5, 3: 0},
		},
		{
			name:           "half correct",
			questions:      questions,
			answers:        map[int64]string{1: "B", 2: "B", 3: "x"},
			wantTotal:      5,
			wantMax:        10,
			wantPercentage: "50",
			wantScores:     map[int64]int{1: 0, 2: 5, 3: 0},
		},
		{
			name:           "comparison trims and ignores case",
			questions:      questions,
			answers:        map[int64]string{1: "  a ", 2: "b"},
			wantTotal:      10,
			wantMax:        10,
			wantPercentage: "100",
			wantScores:     map[int64]int{1: 5, 2: 5, 3: 0},
		},
		{
			name:           "missing answers are incorrect, not an error",
			questions:      questions,
			answers:        map[int64]string{2: "B"},
			wantTotal:      5,
			wantMax:        10,
			wantPercentage: "50",
			wantScores:     map[int64]int{1: 0, 2: 5, 3: 0},
		},
		{
			name: "only open questions yields zero percentage",
			questions: []Question{
				{ID: 7, Type: QuestionTypeOpen, Points: 10, CorrectAnswer: "essay"},
			},
			answers:        map[int64]string{7: "essay"},
			wantTotal:      0,
			wantMax:        0,
			wantPercentage: "0",
			wantScores:     map[int64]int{7: 0},
		},
		{
			name: "percentage rounds half up",
			questions: []Question{
				{ID: 1, Type: QuestionTypeSingleChoice, Points: 1, CorrectAnswer: "A"},
				{ID: 2, Type: QuestionTypeSingleChoice, Points: 1, CorrectAnswer: "B"},
				{ID: 3, Type: QuestionTypeSingleChoice, Points: 1, CorrectAnswer: "C"},
			},
			answers:        map[int64]string{1: "A"},
			wantTotal:      1,
			wantMax:        3,
			wantPercentage: "33.33",
			wantScores:     map[int64]int{1: 1, 2: 0, 3: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreSubmission(tt.questions, tt.answers)

			assert.Equal(t, tt.wantTotal, got.TotalScore)
			assert.Equal(t, tt.wantMax, got.MaxScore)
			assert.True(t, got.Percentage.Equal(decimal.RequireFromString(tt.wantPercentage)),
				"percentage = %s, want %s", got.Percentage, tt.wantPercentage)
			assert.Equal(t, tt.wantScores, got.QuestionScores)
		})
	}
}

func TestScoreSubmission_Deterministic(t *testing.T) {
	questions := []Question{
		{ID: 1, Type: QuestionTypeSingleChoice, Points: 3, CorrectAnswer: "A"},
		{ID: 2, Type: QuestionTypeTrueFalse, Points: 2, CorrectAnswer: "True"},
		{ID: 3, Type: QuestionTypeOpen, Points: 10, CorrectAnswer: "essay"},
	}
	answers := map[int64]string{1: "A", 2: "false", 3: "text"}

	first := ScoreSubmission(questions, answers)
	for i := 0; i < 50; i++ {
		got := ScoreSubmission(questions, answers)
		assert.Equal(t, first.TotalScore, got.TotalScore)
		assert.Equal(t, first.MaxScore, got.MaxScore)
		assert.True(t, first.Percentage.Equal(got.Percentage))
		assert.Equal(t, first.QuestionScores, got.QuestionScores)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name       string
		totalScore int
		maxScore   int
		expected   string
	}{
		{name: "full score", totalScore: 10, maxScore: 10, expected: "100"},
		{name: "zero max score", totalScore: 0, maxScore: 0, expected: "0"},
		{name: "two thirds rounds half up", totalScore: 2, maxScore: 3, expected: "66.67"},
		{name: "one sixth", totalScore: 1, maxScore: 6, expected: "16.67"},
		{name: "exact half", totalScore: 1, maxScore: 2, expected: "50"},
		{name: "one eighth", totalScore: 1, maxScore: 8, expected: "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(tt.totalScore, tt.maxScore)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"Percentage(%d, %d) = %s, want %s", tt.totalScore, tt.maxScore, got, tt.expected)
		})
	}
}
