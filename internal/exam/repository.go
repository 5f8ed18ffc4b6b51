package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBExamRepository manages exam rows using MySQL.
type DBExamRepository struct {
	ext sqlx.ExtContext
}

// NewDBExamRepository creates a new DBExamRepository.
func NewDBExamRepository(db *sqlx.DB) *DBExamRepository {
	return &DBExamRepository{ext: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *DBExamRepository) WithTx(tx *sqlx.Tx) *DBExamRepository {
	return &DBExamRepository{ext: tx}
}

// FindByID returns the exam with the given id, or nil if not found.
func (r *DBExamRepository) FindByID(ctx context.Context, id int64) (*Exam, error) {
	var exam Exam
	err := sqlx.GetContext(ctx, r.ext, &exam, "SELECT * FROM exams WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(exam) > %w", err)
	}
	return &exam, nil
}

// FindByNoteID returns all exams generated from a note, oldest first.
func (r *DBExamRepository) FindByNoteID(ctx context.Context, noteID int64) ([]Exam, error) {
	var exams []Exam
	if err := sqlx.SelectContext(ctx, r.ext, &exams,
		"SELECT * FROM exams WHERE note_id = ? ORDER BY id", noteID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(exams by note) > %w", err)
	}
	return exams, nil
}

// Create inserts a new exam.
func (r *DBExamRepository) Create(ctx context.Context, exam *Exam) error {
	result, err := r.ext.ExecContext(ctx,
		"INSERT INTO exams (note_id, user_id, title, total_questions) VALUES (?, ?, ?, ?)",
		exam.NoteID, exam.UserID, exam.Title, exam.TotalQuestions)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert exam) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	exam.ID = id
	return nil
}

// Delete removes an exam row. Dependent rows are removed separately so the
// cascade stays visible in one transaction.
func (r *DBExamRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.ext.ExecContext(ctx, "DELETE FROM exams WHERE id = ?", id); err != nil {
		return fmt.Errorf("db.ExecContext(delete exam) > %w", err)
	}
	return nil
}

// DBQuestionRepository manages question rows using MySQL.
type DBQuestionRepository struct {
	ext sqlx.ExtContext
}

// NewDBQuestionRepository creates a new DBQuestionRepository.
func NewDBQuestionRepository(db *sqlx.DB) *DBQuestionRepository {
	return &DBQuestionRepository{ext: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *DBQuestionRepository) WithTx(tx *sqlx.Tx) *DBQuestionRepository {
	return &DBQuestionRepository{ext: tx}
}

// FindByExamID returns the exam's questions in creation order, with option
// lists decoded. A row whose options column fails to decode is returned
// without options; options are display metadata, not scoring input.
func (r *DBQuestionRepository) FindByExamID(ctx context.Context, examID int64) ([]Question, error) {
	var questions []Question
	if err := sqlx.SelectContext(ctx, r.ext, &questions,
		"SELECT * FROM questions WHERE exam_id = ? ORDER BY id", examID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions by exam) > %w", err)
	}
	for i := range questions {
		questions[i].Options = decodeOptions(questions[i].OptionsJSON)
	}
	return questions, nil
}

// Create inserts a new question, encoding its option list into the JSON
// column.
func (r *DBQuestionRepository) Create(ctx context.Context, question *Question) error {
	optionsJSON, err := encodeOptions(question.Options)
	if err != nil {
		return fmt.Errorf("encodeOptions() > %w", err)
	}
	question.OptionsJSON = optionsJSON

	result, err := r.ext.ExecContext(ctx,
		`INSERT INTO questions (exam_id, title, type, points, correct_answer, explanation, options_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		question.ExamID, question.Title, question.Type, question.Points,
		question.CorrectAnswer, question.Explanation, question.OptionsJSON)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert question) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	question.ID = id
	return nil
}

// DeleteByExamID removes all questions of an exam.
func (r *DBQuestionRepository) DeleteByExamID(ctx context.Context, examID int64) error {
	if _, err := r.ext.ExecContext(ctx, "DELETE FROM questions WHERE exam_id = ?", examID); err != nil {
		return fmt.Errorf("db.ExecContext(delete questions) > %w", err)
	}
	return nil
}

func encodeOptions(options []Option) (sql.NullString, error) {
	if len(options) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeOptions(optionsJSON sql.NullString) []Option {
	if !optionsJSON.Valid || optionsJSON.String == "" {
		return nil
	}
	var options []Option
	if err := json.Unmarshal([]byte(optionsJSON.String), &options); err != nil {
		return nil
	}
	return options
}
