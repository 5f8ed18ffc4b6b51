// Package exam implements the exam attempt lifecycle and the spaced-repetition
// review schedule derived from attempt results.
package exam

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// QuestionType identifies how a question is answered and scored.
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeTrueFalse    QuestionType = "true_false"
	// QuestionTypeOpen questions carry a reference answer but are never scored
	// automatically; they always contribute zero to both score sums.
	QuestionTypeOpen QuestionType = "open_question"
)

// Option is one selectable choice of a single-choice or true/false question.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question belongs to an exam and is immutable after creation.
type Question struct {
	ID            int64        `db:"id" json:"id"`
	ExamID        int64        `db:"exam_id" json:"examId"`
	Title         string       `db:"title" json:"title"`
	Type          QuestionType `db:"type" json:"type"`
	Points        int          `db:"points" json:"points"`
	CorrectAnswer string       `db:"correct_answer" json:"correctAnswer"`
	Explanation   string       `db:"explanation" json:"explanation"`
	// OptionsJSON is the stored representation; Options is decoded from it on
	// read, best effort.
	OptionsJSON sql.NullString `db:"options_json" json:"-"`
	Options     []Option       `db:"-" json:"options,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

// Exam owns an ordered list of questions generated from a note.
type Exam struct {
	ID             int64      `db:"id" json:"id"`
	NoteID         int64      `db:"note_id" json:"noteId"`
	UserID         int64      `db:"user_id" json:"userId"`
	Title          string     `db:"title" json:"title"`
	TotalQuestions int        `db:"total_questions" json:"totalQuestions"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
	Questions      []Question `db:"-" json:"questions,omitempty"`
}

// Answer is the submitted answer for one question. There is at most one row
// per (exam, user, question); a later save overwrites the earlier one.
type Answer struct {
	ID         int64  `db:"id" json:"id"`
	ExamID     int64  `db:"exam_id" json:"examId"`
	UserID     int64  `db:"user_id" json:"userId"`
	QuestionID int64  `db:"question_id" json:"questionId"`
	Answer     string `db:"answer" json:"answer"`
	// Score is set at submit time only; draft saves leave it NULL.
	Score *int `db:"score" json:"score,omitempty"`
	// AttemptGroup ties all answers persisted by one save or submit call
	// together. It doubles as the draft token returned to the caller.
	AttemptGroup string    `db:"attempt_group" json:"attemptGroup"`
	SubmitTime   time.Time `db:"submit_time" json:"submitTime"`
}

// Attempt is the permanent record of one scored submission. It is never
// updated after insert.
type Attempt struct {
	ID           int64           `db:"id" json:"id"`
	ExamID       int64           `db:"exam_id" json:"examId"`
	UserID       int64           `db:"user_id" json:"userId"`
	TotalScore   int             `db:"total_score" json:"totalScore"`
	MaxScore     int             `db:"max_score" json:"maxScore"`
	Percentage   decimal.Decimal `db:"percentage" json:"percentage"`
	AttemptGroup string          `db:"attempt_group" json:"attemptGroup"`
	SubmitTime   time.Time       `db:"submit_time" json:"submitTime"`
}

// AttemptDetail is an attempt together with the answers persisted by the same
// submission.
type AttemptDetail struct {
	Attempt
	Answers map[int64]string `json:"answers"`
}

// ReviewSchedule is the per exam/user spaced-repetition state. One row per
// pair, created on the first scored attempt and updated on every one after.
type ReviewSchedule struct {
	ID             int64     `db:"id" json:"id"`
	ExamID         int64     `db:"exam_id" json:"examId"`
	UserID         int64     `db:"user_id" json:"userId"`
	EaseFactor     float64   `db:"ease_factor" json:"easeFactor"`
	IntervalDays   int       `db:"interval_days" json:"intervalDays"`
	LastReviewDate time.Time `db:"last_review_date" json:"lastReviewDate"`
	NextReviewDate time.Time `db:"next_review_date" json:"nextReviewDate"`
}

// ReviewStatistic is a per-exam attempt aggregate used by the review queue
// fallback when no schedule rows exist yet.
type ReviewStatistic struct {
	ExamID         int64               `db:"exam_id"`
	LastSubmitTime sql.NullTime        `db:"last_submit_time"`
	AttemptCount   int                 `db:"attempt_count"`
	LastPercentage decimal.NullDecimal `db:"last_percentage"`
}
