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

func TestDBExamRepository_FindByID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		id        int64
		setupMock func(mock sqlmock.Sqlmock)
		want      *Exam
		wantErr   bool
	}{
		{
			name: "returns the exam",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "note_id", "user_id", "title", "total_questions", "created_at", "updated_at",
				}).
					AddRow(1, 10, 100, "Biology chapter 3", 5, now, now)
				mock.ExpectQuery("SELECT \\* FROM exams WHERE id = \\?").
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
			want: &Exam{
				ID:             1,
				NoteID:         10,
				UserID:         100,
				Title:          "Biology chapter 3",
				TotalQuestions: 5,
				CreatedAt:      now,
				UpdatedAt:      now,
			},
		},
		{
			name: "returns nil when the exam does not exist",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM exams WHERE id = \\?").
					WithArgs(int64(999)).
					WillReturnRows(sqlmock.NewRows([]string{
						"id", "note_id", "user_id", "title", "total_questions", "created_at", "updated_at",
					}))
			},
			want: nil,
		},
		{
			name: "db error",
			id:   1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM exams WHERE id = \\?").
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

			repo := NewDBExamRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := repo.FindByID(context.Background(), tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBExamRepository_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantErr   bool
	}{
		{
			name: "assigns the inserted id",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO exams").
					WithArgs(int64(10), int64(100), "Biology chapter 3", 5).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			wantID: 7,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO exams").
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

			repo := NewDBExamRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			exam := &Exam{NoteID: 10, UserID: 100, Title: "Biology chapter 3", TotalQuestions: 5}
			err = repo.Create(context.Background(), exam)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, exam.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBQuestionRepository_FindByExamID(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "exam_id", "title", "type", "points", "correct_answer", "explanation", "options_json", "created_at", "updated_at",
	}).
		AddRow(1, 1, "What is a cell?", "single_choice", 5, "A",
			"", `[{"value":"A","label":"A","text":"The basic unit of life"}]`, now, now).
		AddRow(2, 1, "Mitochondria produce energy.", "true_false", 5, "True",
			"", nil, now, now).
		AddRow(3, 1, "Describe osmosis.", "open_question", 10, "Movement of water",
			"", "not valid json", now, now)
	mock.ExpectQuery("SELECT \\* FROM questions WHERE exam_id = \\? ORDER BY id").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	repo := NewDBQuestionRepository(sqlx.NewDb(db, "mysql"))
	got, err := repo.FindByExamID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Len(t, got[0].Options, 1)
	assert.Equal(t, "The basic unit of life", got[0].Options[0].Text)
	assert.Nil(t, got[1].Options)
	// undecodable options leave the question usable without them
	assert.Nil(t, got[2].Options)
	assert.Equal(t, QuestionTypeOpen, got[2].Type)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBQuestionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO questions").
		WithArgs(int64(1), "What is a cell?", QuestionTypeSingleChoice, 5, "A", "",
			sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	repo := NewDBQuestionRepository(sqlx.NewDb(db, "mysql"))
	question := &Question{
		ExamID:        1,
		Title:         "What is a cell?",
		Type:          QuestionTypeSingleChoice,
		Points:        5,
		CorrectAnswer: "A",
		Options: []Option{
			{Value: "A", Label: "A", Text: "The basic unit of life"},
			{Value: "B", Label: "B", Text: "A kind of tissue"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), question))

	assert.Equal(t, int64(3), question.ID)
	assert.True(t, question.OptionsJSON.Valid)
	assert.Contains(t, question.OptionsJSON.String, "The basic unit of life")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBQuestionRepository_DeleteByExamID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM questions WHERE exam_id = \\?").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewDBQuestionRepository(sqlx.NewDb(db, "mysql"))
	require.NoError(t, repo.DeleteByExamID(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}
