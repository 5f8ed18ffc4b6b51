package exam

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// overdueSaturationDays is where the overdue bonus stops growing: anything
// ten or more days overdue is treated as maximally urgent.
const overdueSaturationDays = 10.0

// ReviewItem is one entry of the ranked review queue.
type ReviewItem struct {
	Exam     Exam    `json:"exam"`
	Priority float64 `json:"priority"`
	// Last attempt summary for display; nil when the exam has never been
	// attempted.
	LastSubmitTime *time.Time       `json:"lastSubmitTime,omitempty"`
	LastPercentage *decimal.Decimal `json:"lastPercentage,omitempty"`
	AttemptCount   int              `json:"attemptCount"`
	NextReviewDate *time.Time       `json:"nextReviewDate,omitempty"`
}

// GetReviewQueue returns up to limit exams ranked by review urgency.
//
// The primary ranking walks the user's due review schedules: priority is
// 1.0 + min(overdueDays/10, 1.0), so it ranges [1.0, 2.0] and saturates after
// ten days overdue. When the user has no due schedule at all, a coarser
// statistics-based fallback ranks exams instead; the two rankings are never
// merged.
func (s *ExamService) GetReviewQueue(ctx context.Context, userID int64, limit int) ([]ReviewItem, error) {
	if limit <= 0 {
		return nil, BadRequestError("limit must be positive")
	}

	now := s.now()
	schedules, err := s.schedules.FindDueByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	items := make([]ReviewItem, 0, len(schedules))
	for _, schedule := range schedules {
		exam, err := s.exams.FindByID(ctx, schedule.ExamID)
		if err != nil {
			return nil, err
		}
		if exam == nil {
			continue
		}

		overdueDays := daysBetween(schedule.NextReviewDate, now)
		item := ReviewItem{
			Exam:     *exam,
			Priority: 1.0 + math.Min(float64(overdueDays)/overdueSaturationDays, 1.0),
		}
		nextReview := schedule.NextReviewDate
		item.NextReviewDate = &nextReview

		attempts, err := s.attempts.FindByExamAndUser(ctx, schedule.ExamID, userID)
		if err != nil {
			return nil, err
		}
		item.AttemptCount = len(attempts)
		if len(attempts) > 0 {
			last := attempts[0]
			item.LastSubmitTime = &last.SubmitTime
			percentage := last.Percentage
			item.LastPercentage = &percentage
		}

		items = append(items, item)
	}

	if len(items) == 0 {
		return s.reviewQueueFallback(ctx, userID, limit, now)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Priority > items[j].Priority })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// reviewQueueFallback ranks exams from attempt statistics alone, for users
// without any populated schedule. Exams attempted today are skipped;
// never-attempted exams get priority 1.0, previously attempted ones 0.5.
// This is a deliberately coarser, secondary ranking.
func (s *ExamService) reviewQueueFallback(ctx context.Context, userID int64, limit int, now time.Time) ([]ReviewItem, error) {
	stats, err := s.attempts.ReviewStatisticsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	items := make([]ReviewItem, 0, len(stats))
	for _, stat := range stats {
		if stat.LastSubmitTime.Valid && !stat.LastSubmitTime.Time.Before(todayStart) {
			continue
		}

		exam, err := s.exams.FindByID(ctx, stat.ExamID)
		if err != nil {
			return nil, err
		}
		if exam == nil {
			continue
		}

		item := ReviewItem{
			Exam:         *exam,
			Priority:     0.5,
			AttemptCount: stat.AttemptCount,
		}
		if !stat.LastSubmitTime.Valid {
			item.Priority = 1.0
		} else {
			lastSubmit := stat.LastSubmitTime.Time
			item.LastSubmitTime = &lastSubmit
		}
		if stat.LastPercentage.Valid {
			percentage := stat.LastPercentage.Decimal
			item.LastPercentage = &percentage
		}

		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Priority > items[j].Priority })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// daysBetween returns whole days from a to b, truncated.
func daysBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
