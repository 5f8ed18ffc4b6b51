package exam

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// DBScheduleRepository manages review schedule rows using MySQL. The service
// is the only writer; there is one row per (exam, user) pair.
type DBScheduleRepository struct {
	ext sqlx.ExtContext
}

// NewDBScheduleRepository creates a new DBScheduleRepository.
func NewDBScheduleRepository(db *sqlx.DB) *DBScheduleRepository {
	return &DBScheduleRepository{ext: db}
}

// WithTx returns a copy of the repository bound to the transaction.
func (r *DBScheduleRepository) WithTx(tx *sqlx.Tx) *DBScheduleRepository {
	return &DBScheduleRepository{ext: tx}
}

// FindByExamAndUser returns the schedule for the pair, or nil if none exists
// yet.
func (r *DBScheduleRepository) FindByExamAndUser(ctx context.Context, examID, userID int64) (*ReviewSchedule, error) {
	var schedule ReviewSchedule
	err := sqlx.GetContext(ctx, r.ext, &schedule,
		"SELECT * FROM exam_review_schedules WHERE exam_id = ? AND user_id = ?", examID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(review schedule) > %w", err)
	}
	return &schedule, nil
}

// FindDueByUser returns the user's schedules whose next review date is at or
// before now, most overdue first.
func (r *DBScheduleRepository) FindDueByUser(ctx context.Context, userID int64, now time.Time) ([]ReviewSchedule, error) {
	var schedules []ReviewSchedule
	if err := sqlx.SelectContext(ctx, r.ext, &schedules,
		"SELECT * FROM exam_review_schedules WHERE user_id = ? AND next_review_date <= ? ORDER BY next_review_date",
		userID, now); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due review schedules) > %w", err)
	}
	return schedules, nil
}

// Create inserts a new schedule row.
func (r *DBScheduleRepository) Create(ctx context.Context, schedule *ReviewSchedule) error {
	result, err := r.ext.ExecContext(ctx,
		`INSERT INTO exam_review_schedules (exam_id, user_id, ease_factor, interval_days, last_review_date, next_review_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		schedule.ExamID, schedule.UserID, schedule.EaseFactor, schedule.IntervalDays,
		schedule.LastReviewDate, schedule.NextReviewDate)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert review schedule) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	schedule.ID = id
	return nil
}

// Update overwrites the schedule's scheduling state by id.
func (r *DBScheduleRepository) Update(ctx context.Context, schedule *ReviewSchedule) error {
	if _, err := r.ext.ExecContext(ctx,
		`UPDATE exam_review_schedules
		SET ease_factor = ?, interval_days = ?, last_review_date = ?, next_review_date = ?
		WHERE id = ?`,
		schedule.EaseFactor, schedule.IntervalDays, schedule.LastReviewDate,
		schedule.NextReviewDate, schedule.ID); err != nil {
		return fmt.Errorf("db.ExecContext(update review schedule) > %w", err)
	}
	return nil
}

// DeleteByExamID removes all schedules of an exam.
func (r *DBScheduleRepository) DeleteByExamID(ctx context.Context, examID int64) error {
	if _, err := r.ext.ExecContext(ctx, "DELETE FROM exam_review_schedules WHERE exam_id = ?", examID); err != nil {
		return fmt.Errorf("db.ExecContext(delete review schedules) > %w", err)
	}
	return nil
}
