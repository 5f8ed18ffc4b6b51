package exam

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBAttemptRepository manages the append-only attempt ledger using MySQL.
type DBAttemptRepository struct {
	ext sqlx.ExtContext
}

// NewDBAttemptRepository creates a new DBAttemptRepository.
func NewDBAttemptRepository(db *sqlx.DB) *DBAttemptRepository {
	return &DBAttemptRepository{ext: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *DBAttemptRepository) WithTx(tx *sqlx.Tx) *DBAttemptRepository {
	return &DBAttemptRepository{ext: tx}
}

// FindByID returns the attempt with the given id, or nil if not found.
func (r *DBAttemptRepository) FindByID(ctx context.Context, id int64) (*Attempt, error) {
	var attempt Attempt
	err := sqlx.GetContext(ctx, r.ext, &attempt, "SELECT * FROM exam_attempts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(attempt) > %w", err)
	}
	return &attempt, nil
}

// FindByExamAndUser returns all attempts for the pair, most recent first.
func (r *DBAttemptRepository) FindByExamAndUser(ctx context.Context, examID, userID int64) ([]Attempt, error) {
	var attempts []Attempt
	if err := sqlx.SelectContext(ctx, r.ext, &attempts,
		"SELECT * FROM exam_attempts WHERE exam_id = ? AND user_id = ? ORDER BY submit_time DESC, id DESC",
		examID, userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(attempts by exam and user) > %w", err)
	}
	return attempts, nil
}

// Create inserts a new attempt. Attempts are never updated afterwards.
func (r *DBAttemptRepository) Create(ctx context.Context, attempt *Attempt) error {
	result, err := r.ext.ExecContext(ctx,
		`INSERT INTO exam_attempts (exam_id, user_id, total_score, max_score, percentage, attempt_group, submit_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		attempt.ExamID, attempt.UserID, attempt.TotalScore, attempt.MaxScore,
		attempt.Percentage, attempt.AttemptGroup, attempt.SubmitTime)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert attempt) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	attempt.ID = id
	return nil
}

// ReviewStatisticsByUser aggregates attempt history per exam owned by the
// user, including exams never attempted. It backs the review queue fallback.
func (r *DBAttemptRepository) ReviewStatisticsByUser(ctx context.Context, userID int64) ([]ReviewStatistic, error) {
	var stats []ReviewStatistic
	if err := sqlx.SelectContext(ctx, r.ext, &stats,
		`SELECT e.id AS exam_id,
			MAX(a.submit_time) AS last_submit_time,
			COUNT(a.id) AS attempt_count,
			(SELECT t.percentage FROM exam_attempts t
				WHERE t.exam_id = e.id AND t.user_id = ?
				ORDER BY t.submit_time DESC, t.id DESC LIMIT 1) AS last_percentage
		FROM exams e
		LEFT JOIN exam_attempts a ON a.exam_id = e.id AND a.user_id = ?
		WHERE e.user_id = ?
		GROUP BY e.id`,
		userID, userID, userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review statistics) > %w", err)
	}
	return stats, nil
}

// DeleteByExamID removes all attempts of an exam.
func (r *DBAttemptRepository) DeleteByExamID(ctx context.Context, examID int64) error {
	if _, err := r.ext.ExecContext(ctx, "DELETE FROM exam_attempts WHERE exam_id = ?", examID); err != nil {
		return fmt.Errorf("db.ExecContext(delete attempts) > %w", err)
	}
	return nil
}
