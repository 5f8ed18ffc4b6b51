package exam

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerColumns() []string {
	return []string{"id", "exam_id", "user_id", "question_id", "answer", "score", "attempt_group", "submit_time"}
}

func TestDBAnswerRepository_FindLatest(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(answerColumns()).
		AddRow(5, 1, 100, 1, "A", 5, "3f1c9c6e-1111-4a7b-9c1d-000000000001", now).
		AddRow(6, 1, 100, 2, "B", 0, "3f1c9c6e-1111-4a7b-9c1d-000000000001", now)
	mock.ExpectQuery("SELECT \\* FROM exam_answers WHERE exam_id = \\? AND user_id = \\?\\s+AND submit_time = \\(SELECT MAX\\(submit_time\\)").
		WithArgs(int64(1), int64(100), int64(1), int64(100)).
		WillReturnRows(rows)

	repo := NewDBAnswerRepository(sqlx.NewDb(db, "mysql"))
	got, err := repo.FindLatest(context.Background(), 1, 100)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].QuestionID)
	assert.Equal(t, "A", got[0].Answer)
	require.NotNil(t, got[0].Score)
	assert.Equal(t, 5, *got[0].Score)
	assert.Equal(t, got[0].AttemptGroup, got[1].AttemptGroup)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBAnswerRepository_FindByAttemptGroup(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(answerColumns()).
		AddRow(5, 1, 100, 1, "A", nil, "3f1c9c6e-1111-4a7b-9c1d-000000000001", now)
	mock.ExpectQuery("SELECT \\* FROM exam_answers WHERE exam_id = \\? AND user_id = \\? AND attempt_group = \\? ORDER BY question_id").
		WithArgs(int64(1), int64(100), "3f1c9c6e-1111-4a7b-9c1d-000000000001").
		WillReturnRows(rows)

	repo := NewDBAnswerRepository(sqlx.NewDb(db, "mysql"))
	got, err := repo.FindByAttemptGroup(context.Background(), 1, 100, "3f1c9c6e-1111-4a7b-9c1d-000000000001")
	require.NoError(t, err)
	require.Len(t, got, 1)

	// draft rows have no score yet
	assert.Nil(t, got[0].Score)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBAnswerRepository_Upsert(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	score := 5

	tests := []struct {
		name      string
		answer    *Answer
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "inserts a scored answer",
			answer: &Answer{
				ExamID:       1,
				UserID:       100,
				QuestionID:   2,
				Answer:       "B",
				Score:        &score,
				AttemptGroup: "3f1c9c6e-1111-4a7b-9c1d-000000000001",
				SubmitTime:   now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO exam_answers .+ ON DUPLICATE KEY UPDATE").
					WithArgs(int64(1), int64(100), int64(2), "B", &score,
						"3f1c9c6e-1111-4a7b-9c1d-000000000001", now).
					WillReturnResult(sqlmock.NewResult(9, 1))
			},
		},
		{
			name: "overwrites an existing draft row",
			answer: &Answer{
				ExamID:       1,
				UserID:       100,
				QuestionID:   2,
				Answer:       "C",
				AttemptGroup: "3f1c9c6e-1111-4a7b-9c1d-000000000002",
				SubmitTime:   now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO exam_answers .+ ON DUPLICATE KEY UPDATE").
					WithArgs(int64(1), int64(100), int64(2), "C", (*int)(nil),
						"3f1c9c6e-1111-4a7b-9c1d-000000000002", now).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name: "db error",
			answer: &Answer{
				ExamID:     1,
				UserID:     100,
				QuestionID: 2,
				SubmitTime: now,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO exam_answers").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBAnswerRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			err = repo.Upsert(context.Background(), tt.answer)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBAnswerRepository_DeleteByExamID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM exam_answers WHERE exam_id = \\?").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	repo := NewDBAnswerRepository(sqlx.NewDb(db, "mysql"))
	require.NoError(t, repo.DeleteByExamID(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
