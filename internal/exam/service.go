package exam

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/m-fukuda/examly/internal/database"
)

//go:generate mockgen -source=service.go -destination=../mocks/exam/mock_service.go -package=mock_exam Service

// Service is the exam attempt lifecycle: exam creation from generated
// questions, draft answer saves, scored submissions, attempt history, the
// review queue, and owner-checked deletion.
type Service interface {
	CreateExam(ctx context.Context, in CreateExamInput) (*Exam, error)
	GetExam(ctx context.Context, examID int64) (*Exam, error)
	GetExamsByNote(ctx context.Context, noteID int64) ([]Exam, error)
	SaveDraftAnswers(ctx context.Context, examID, userID int64, answers map[int64]string, attemptToken string) (string, error)
	GetAnswers(ctx context.Context, examID, userID int64, attemptToken string) ([]Answer, error)
	SubmitExam(ctx context.Context, examID, userID int64, answers map[int64]string, attemptToken string) (*SubmitResult, error)
	GetAttempts(ctx context.Context, examID, userID int64) ([]AttemptDetail, error)
	GetReviewQueue(ctx context.Context, userID int64, limit int) ([]ReviewItem, error)
	DeleteExam(ctx context.Context, examID, userID int64) error
}

// CreateExamInput carries an exam and its already-generated questions. The
// question payload comes from an external generator; this service only
// persists it.
type CreateExamInput struct {
	NoteID    int64
	UserID    int64
	Title     string
	Questions []QuestionInput
}

// QuestionInput is one generated question before normalization.
type QuestionInput struct {
	Title         string
	Type          string
	Points        int
	CorrectAnswer string
	Explanation   string
	Options       []Option
}

// SubmitResult is the outcome of a scored submission.
type SubmitResult struct {
	TotalScore int             `json:"totalScore"`
	MaxScore   int             `json:"maxScore"`
	Percentage decimal.Decimal `json:"percentage"`
	AttemptID  int64           `json:"attemptId"`
}

// ExamService implements Service on MySQL repositories. Every multi-step
// write runs in a single transaction.
type ExamService struct {
	db        *sqlx.DB
	exams     *DBExamRepository
	questions *DBQuestionRepository
	answers   *DBAnswerRepository
	attempts  *DBAttemptRepository
	schedules *DBScheduleRepository

	// now and newToken are injectable so scoring, persistence and scheduling
	// of one call can be exercised without wall-clock or randomness. One now
	// value flows through a whole call.
	now      func() time.Time
	newToken func() string
}

// NewExamService creates an ExamService on the given database handle.
func NewExamService(db *sqlx.DB) *ExamService {
	return &ExamService{
		db:        db,
		exams:     NewDBExamRepository(db),
		questions: NewDBQuestionRepository(db),
		answers:   NewDBAnswerRepository(db),
		attempts:  NewDBAttemptRepository(db),
		schedules: NewDBScheduleRepository(db),
		now:       time.Now,
		newToken:  uuid.NewString,
	}
}

// CreateExam persists an exam and its generated questions in one transaction.
func (s *ExamService) CreateExam(ctx context.Context, in CreateExamInput) (*Exam, error) {
	if len(in.Questions) == 0 {
		return nil, BadRequestError("at least one question is required")
	}
	if in.Title == "" {
		return nil, BadRequestError("exam title is required")
	}

	exam := &Exam{
		NoteID:         in.NoteID,
		UserID:         in.UserID,
		Title:          in.Title,
		TotalQuestions: len(in.Questions),
	}

	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.exams.WithTx(tx).Create(ctx, exam); err != nil {
			return err
		}
		questions := s.questions.WithTx(tx)
		for _, qi := range in.Questions {
			question := normalizeQuestion(exam.ID, qi)
			if err := questions.Create(ctx, &question); err != nil {
				return err
			}
			exam.Questions = append(exam.Questions, question)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exam, nil
}

func normalizeQuestion(examID int64, in QuestionInput) Question {
	question := Question{
		ExamID:        examID,
		Title:         in.Title,
		Points:        in.Points,
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
		Options:       in.Options,
	}

	switch in.Type {
	case "single":
		question.Type = QuestionTypeSingleChoice
	case "true-false":
		question.Type = QuestionTypeTrueFalse
	case "open":
		question.Type = QuestionTypeOpen
	default:
		question.Type = QuestionType(in.Type)
	}

	if question.Points <= 0 {
		question.Points = 5
	}
	if question.Type == QuestionTypeTrueFalse && len(question.Options) == 0 {
		question.Options = []Option{
			{Value: "True", Label: "A", Text: "True"},
			{Value: "False", Label: "B", Text: "False"},
		}
	}
	return question
}

// GetExam returns the exam with its questions attached.
func (s *ExamService) GetExam(ctx context.Context, examID int64) (*Exam, error) {
	exam, err := s.exams.FindByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, NotFoundError("exam %d not found", examID)
	}
	exam.Questions, err = s.questions.FindByExamID(ctx, examID)
	if err != nil {
		return nil, err
	}
	return exam, nil
}

// GetExamsByNote returns all exams generated from a note, each with its
// questions attached.
func (s *ExamService) GetExamsByNote(ctx context.Context, noteID int64) ([]Exam, error) {
	exams, err := s.exams.FindByNoteID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	for i := range exams {
		exams[i].Questions, err = s.questions.FindByExamID(ctx, exams[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return exams, nil
}

// SaveDraftAnswers persists in-progress answers without scoring them. All
// rows of one call share one submit timestamp and one batch token; the token
// is returned so the caller can retrieve exactly this draft later. Passing a
// token from an earlier save continues that batch instead of starting a new
// one. Saving again overwrites existing rows per question instead of
// duplicating them. This never creates an attempt.
func (s *ExamService) SaveDraftAnswers(ctx context.Context, examID, userID int64, answers map[int64]string, attemptToken string) (string, error) {
	if answers == nil {
		return "", BadRequestError("answers are required")
	}

	submitTime := s.now()
	token := attemptToken
	if token == "" {
		token = s.newToken()
	}

	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		repo := s.answers.WithTx(tx)
		for _, questionID := range sortedQuestionIDs(answers) {
			answer := &Answer{
				ExamID:       examID,
				UserID:       userID,
				QuestionID:   questionID,
				Answer:       answers[questionID],
				AttemptGroup: token,
				SubmitTime:   submitTime,
			}
			if err := repo.Upsert(ctx, answer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetAnswers returns stored answers for the pair. Without a token it returns
// the rows sharing the most recent submit timestamp. A token is resolved via
// the attempt ledger first (tokens handed out by SubmitExam are attempt ids),
// then treated as a draft batch token.
func (s *ExamService) GetAnswers(ctx context.Context, examID, userID int64, attemptToken string) ([]Answer, error) {
	if attemptToken == "" {
		return s.answers.FindLatest(ctx, examID, userID)
	}

	if attemptID, err := strconv.ParseInt(attemptToken, 10, 64); err == nil {
		attempt, err := s.attempts.FindByID(ctx, attemptID)
		if err != nil {
			return nil, err
		}
		if attempt != nil && attempt.ExamID == examID && attempt.UserID == userID {
			return s.answers.FindByAttemptGroup(ctx, examID, userID, attempt.AttemptGroup)
		}
	}
	return s.answers.FindByAttemptGroup(ctx, examID, userID, attemptToken)
}

// SubmitExam scores the submission, persists the answers with their scores,
// records an immutable attempt, and updates the review schedule, all in one
// transaction. This is the only path that creates an attempt. A draft token
// from an earlier save keeps the scored rows in that batch; otherwise a new
// batch token is generated.
func (s *ExamService) SubmitExam(ctx context.Context, examID, userID int64, answers map[int64]string, attemptToken string) (*SubmitResult, error) {
	if answers == nil {
		return nil, BadRequestError("answers are required")
	}

	exam, err := s.exams.FindByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, NotFoundError("exam %d not found", examID)
	}

	questions, err := s.questions.FindByExamID(ctx, examID)
	if err != nil {
		return nil, err
	}

	scored := ScoreSubmission(questions, answers)
	submitTime := s.now()
	token := attemptToken
	if token == "" {
		token = s.newToken()
	}

	attempt := &Attempt{
		ExamID:       examID,
		UserID:       userID,
		TotalScore:   scored.TotalScore,
		MaxScore:     scored.MaxScore,
		Percentage:   scored.Percentage,
		AttemptGroup: token,
		SubmitTime:   submitTime,
	}

	err = database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		answerRepo := s.answers.WithTx(tx)
		for _, questionID := range sortedQuestionIDs(answers) {
			score := scored.QuestionScores[questionID]
			answer := &Answer{
				ExamID:       examID,
				UserID:       userID,
				QuestionID:   questionID,
				Answer:       answers[questionID],
				Score:        &score,
				AttemptGroup: token,
				SubmitTime:   submitTime,
			}
			if err := answerRepo.Upsert(ctx, answer); err != nil {
				return err
			}
		}

		if err := s.attempts.WithTx(tx).Create(ctx, attempt); err != nil {
			return err
		}

		percentage, _ := scored.Percentage.Float64()
		return s.updateReviewSchedule(ctx, s.schedules.WithTx(tx), examID, userID, percentage, submitTime)
	})
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		TotalScore: scored.TotalScore,
		MaxScore:   scored.MaxScore,
		Percentage: scored.Percentage,
		AttemptID:  attempt.ID,
	}, nil
}

// updateReviewSchedule applies the SM-2 update for one scored attempt. A
// missing schedule row is first created with the baseline state, then the
// quality-based adjustment is applied on top and persisted as an update.
func (s *ExamService) updateReviewSchedule(ctx context.Context, schedules *DBScheduleRepository, examID, userID int64, percentage float64, now time.Time) error {
	schedule, err := schedules.FindByExamAndUser(ctx, examID, userID)
	if err != nil {
		return err
	}
	if schedule == nil {
		schedule = &ReviewSchedule{
			ExamID:         examID,
			UserID:         userID,
			EaseFactor:     DefaultEaseFactor,
			IntervalDays:   firstIntervalDays,
			LastReviewDate: now,
			NextReviewDate: now.AddDate(0, 0, firstIntervalDays),
		}
		if err := schedules.Create(ctx, schedule); err != nil {
			return err
		}
	}

	quality := QualityFromPercentage(percentage)
	schedule.EaseFactor = NextEaseFactor(schedule.EaseFactor, quality)
	schedule.IntervalDays = NextInterval(schedule.IntervalDays, schedule.EaseFactor, quality)
	schedule.LastReviewDate = now
	schedule.NextReviewDate = now.AddDate(0, 0, schedule.IntervalDays)

	return schedules.Update(ctx, schedule)
}

// GetAttempts returns the attempt history for the pair, most recent first,
// each attempt with the answers persisted by its submission.
func (s *ExamService) GetAttempts(ctx context.Context, examID, userID int64) ([]AttemptDetail, error) {
	attempts, err := s.attempts.FindByExamAndUser(ctx, examID, userID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.FindByExamAndUser(ctx, examID, userID)
	if err != nil {
		return nil, err
	}

	details := make([]AttemptDetail, 0, len(attempts))
	for _, attempt := range attempts {
		detail := AttemptDetail{
			Attempt: attempt,
			Answers: make(map[int64]string),
		}
		for _, answer := range answers {
			// Answer rows are overwritten by later saves, so only the latest
			// attempt keeps a full answer set. Older attempts match whatever
			// rows still carry their batch.
			if answer.AttemptGroup == attempt.AttemptGroup || answer.SubmitTime.Equal(attempt.SubmitTime) {
				detail.Answers[answer.QuestionID] = answer.Answer
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

// DeleteExam removes the exam and everything recorded against it: questions,
// answers, attempts and the review schedule, as an explicit fan-out in one
// transaction. Only the owning user may delete an exam.
func (s *ExamService) DeleteExam(ctx context.Context, examID, userID int64) error {
	exam, err := s.exams.FindByID(ctx, examID)
	if err != nil {
		return err
	}
	if exam == nil {
		return NotFoundError("exam %d not found", examID)
	}
	if exam.UserID != userID {
		return ForbiddenError("user %d does not own exam %d", userID, examID)
	}

	return database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.answers.WithTx(tx).DeleteByExamID(ctx, examID); err != nil {
			return err
		}
		if err := s.attempts.WithTx(tx).DeleteByExamID(ctx, examID); err != nil {
			return err
		}
		if err := s.schedules.WithTx(tx).DeleteByExamID(ctx, examID); err != nil {
			return err
		}
		if err := s.questions.WithTx(tx).DeleteByExamID(ctx, examID); err != nil {
			return err
		}
		return s.exams.WithTx(tx).Delete(ctx, examID)
	})
}

func sortedQuestionIDs(answers map[int64]string) []int64 {
	ids := make([]int64, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
