package exam

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBAnswerRepository manages submitted answer rows using MySQL.
type DBAnswerRepository struct {
	ext sqlx.ExtContext
}

// NewDBAnswerRepository creates a new DBAnswerRepository.
func NewDBAnswerRepository(db *sqlx.DB) *DBAnswerRepository {
	return &DBAnswerRepository{ext: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *DBAnswerRepository) WithTx(tx *sqlx.Tx) *DBAnswerRepository {
	return &DBAnswerRepository{ext: tx}
}

// FindByExamAndUser returns all answer rows for the pair, by question order.
func (r *DBAnswerRepository) FindByExamAndUser(ctx context.Context, examID, userID int64) ([]Answer, error) {
	var answers []Answer
	if err := sqlx.SelectContext(ctx, r.ext, &answers,
		"SELECT * FROM exam_answers WHERE exam_id = ? AND user_id = ? ORDER BY question_id",
		examID, userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(answers by exam and user) > %w", err)
	}
	return answers, nil
}

// FindLatest returns the answer rows sharing the most recent submit time for
// the pair: the latest draft or submission, whichever came last.
func (r *DBAnswerRepository) FindLatest(ctx context.Context, examID, userID int64) ([]Answer, error) {
	var answers []Answer
	if err := sqlx.SelectContext(ctx, r.ext, &answers,
		`SELECT * FROM exam_answers WHERE exam_id = ? AND user_id = ?
		AND submit_time = (SELECT MAX(submit_time) FROM exam_answers WHERE exam_id = ? AND user_id = ?)
		ORDER BY question_id`,
		examID, userID, examID, userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(latest answers) > %w", err)
	}
	return answers, nil
}

// FindByAttemptGroup returns the answer rows persisted by one save or submit
// call.
func (r *DBAnswerRepository) FindByAttemptGroup(ctx context.Context, examID, userID int64, attemptGroup string) ([]Answer, error) {
	var answers []Answer
	if err := sqlx.SelectContext(ctx, r.ext, &answers,
		"SELECT * FROM exam_answers WHERE exam_id = ? AND user_id = ? AND attempt_group = ? ORDER BY question_id",
		examID, userID, attemptGroup); err != nil {
		return nil, fmt.Errorf("db.SelectContext(answers by attempt group) > %w", err)
	}
	return answers, nil
}

// Upsert inserts the answer or, when a row for (exam, user, question) already
// exists, overwrites it in place. Last writer wins on the row.
func (r *DBAnswerRepository) Upsert(ctx context.Context, answer *Answer) error {
	if _, err := r.ext.ExecContext(ctx,
		`INSERT INTO exam_answers (exam_id, user_id, question_id, answer, score, attempt_group, submit_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			answer = VALUES(answer),
			score = VALUES(score),
			attempt_group = VALUES(attempt_group),
			submit_time = VALUES(submit_time)`,
		answer.ExamID, answer.UserID, answer.QuestionID, answer.Answer,
		answer.Score, answer.AttemptGroup, answer.SubmitTime); err != nil {
		return fmt.Errorf("db.ExecContext(upsert answer) > %w", err)
	}
	return nil
}

// DeleteByExamID removes all answers of an exam.
func (r *DBAnswerRepository) DeleteByExamID(ctx context.Context, examID int64) error {
	if _, err := r.ext.ExecContext(ctx, "DELETE FROM exam_answers WHERE exam_id = ?", examID); err != nil {
		return fmt.Errorf("db.ExecContext(delete answers) > %w", err)
	}
	return nil
}
