// Package server exposes the exam service over HTTP with JSON bodies.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/m-fukuda/examly/internal/exam"
)

// ExamHandler serves the exam lifecycle endpoints.
type ExamHandler struct {
	service  exam.Service
	validate *validator.Validate
	logger   *slog.Logger

	// defaultQueueLimit applies when a review queue request carries no limit.
	defaultQueueLimit int
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(service exam.Service, logger *slog.Logger, defaultQueueLimit int) *ExamHandler {
	return &ExamHandler{
		service:           service,
		validate:          validator.New(),
		logger:            logger,
		defaultQueueLimit: defaultQueueLimit,
	}
}

// Routes mounts all exam endpoints on the router.
func (h *ExamHandler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/exams", func(r chi.Router) {
			r.Post("/", h.CreateExam)
			r.Route("/{examID}", func(r chi.Router) {
				r.Get("/", h.GetExam)
				r.Delete("/", h.DeleteExam)
				r.Post("/answers", h.SaveAnswers)
				r.Get("/answers", h.GetAnswers)
				r.Post("/submit", h.SubmitExam)
				r.Get("/attempts", h.GetAttempts)
			})
		})
		r.Get("/notes/{noteID}/exams", h.GetExamsByNote)
		r.Get("/reviews", h.GetReviewQueue)
	})
}

type createExamRequest struct {
	NoteID    int64                   `json:"noteId" validate:"required"`
	UserID    int64                   `json:"userId" validate:"required"`
	Title     string                  `json:"title" validate:"required"`
	Questions []createQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type createQuestionRequest struct {
	Title         string        `json:"title" validate:"required"`
	Type          string        `json:"type" validate:"required"`
	Points        int           `json:"points"`
	CorrectAnswer string        `json:"correctAnswer" validate:"required"`
	Explanation   string        `json:"explanation"`
	Options       []exam.Option `json:"options"`
}

func (h *ExamHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var req createExamRequest
	if !h.decode(w, r, &req) {
		return
	}

	in := exam.CreateExamInput{
		NoteID: req.NoteID,
		UserID: req.UserID,
		Title:  req.Title,
	}
	for _, q := range req.Questions {
		in.Questions = append(in.Questions, exam.QuestionInput{
			Title:         q.Title,
			Type:          q.Type,
			Points:        q.Points,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Options:       q.Options,
		})
	}

	created, err := h.service.CreateExam(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *ExamHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	examID, ok := h.pathID(w, r, "examID")
	if !ok {
		return
	}

	got, err := h.service.GetExam(r.Context(), examID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, got)
}

func (h *ExamHandler) GetExamsByNote(w http.ResponseWriter, r *http.Request) {
	noteID, ok := h.pathID(w, r, "noteID")
	if !ok {
		return
	}

	exams, err := h.service.GetExamsByNote(r.Context(), noteID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, exams)
}

type saveAnswersRequest struct {
	UserID int64 `json:"userId" validate:"required"`
	// Answers maps question ids to the submitted answer text. Keys arrive as
	// JSON strings and must parse as integers. A missing map is rejected by
	// the service; an empty one is a valid save.
	Answers map[string]string `json:"answers"`
	// AttemptID continues an earlier draft batch when present.
	AttemptID string `json:"attemptId"`
}

type saveAnswersResponse struct {
	AttemptID string `json:"attemptId"`
}

func (h *ExamHandler) SaveAnswers(w http.ResponseWriter, r *http.Request) {
	examID, ok := h.pathID(w, r, "examID")
	if !ok {
		return
	}
	var req saveAnswersRequest
	if !h.decode(w, r, &req) {
		return
	}
	answers, err := parseAnswerKeys(req.Answers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.service.SaveDraftAnswers(r.Context(), examID, req.UserID, answers, req.AttemptID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, saveAnswersResponse{AttemptID: token})
}

func (h *ExamHandler) GetAnswers(w http.ResponseWriter, r *http.Request) {
	examID, ok := h.pathID(w, r, "examID")
	if !ok {
		return
	}
	userID, ok := h.queryID(w, r, "userId")
	if !ok {
		return
	}

	answers, err := h.service.GetAnswers(r.Context(), examID, userID, r.URL.Query().Get("attemptId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, answers)
}

func (h *ExamHandler) SubmitExam(w http.ResponseWriter, r *http.Request) {
	examID, ok := h.pathID(w, r, "examID")
	if !ok {
		return
	}
	var req saveAnswersRequest
	if !h.decode(w, r, &req) {
		return
	}
	answers, err := parseAnswerKeys(req.Answers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.service.SubmitExam(r.Context(), examID, req.UserID, answers, req.AttemptID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *ExamHandler) GetAttempts(w http.ResponseWriter, r *http.Request) {
	examID, ok := h.pathID(w, r, "examID")
	if !ok {
		return
	}
	userID, ok := h.queryID(w, r, "userId")
	if !ok {
		return
	}

	attempts, err := h.service.GetAttempts(r.Context(), examID, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, attempts)
}

func (h *ExamHandler) GetReviewQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.queryID(w, r, "userId")
	if !ok {
		return
	}

	limit := h.defaultQueueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, exam.BadRequestError("limit must be an integer: %q", raw))
			return
		}
		limit = parsed
	}

	items, err := h.service.GetReviewQueue(r.Context(), userID, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}

func (h *ExamHandler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	examID, ok := h.pathID(w, r, "examID")
	if !ok {
		return
	}
	userID, ok := h.queryID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.service.DeleteExam(r.Context(), examID, userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseAnswerKeys(raw map[string]string) (map[int64]string, error) {
	if raw == nil {
		return nil, nil
	}
	answers := make(map[int64]string, len(raw))
	for key, value := range raw {
		questionID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, exam.BadRequestError("answer key %q is not a question id", key)
		}
		answers[questionID] = value
	}
	return answers, nil
}

func (h *ExamHandler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.writeError(w, r, exam.BadRequestError("invalid request body"))
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, exam.BadRequestError("%s", err.Error()))
		return false
	}
	return true
}

func (h *ExamHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		h.writeError(w, r, exam.BadRequestError("%s must be an integer", name))
		return 0, false
	}
	return id, true
}

func (h *ExamHandler) queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.writeError(w, r, exam.BadRequestError("%s query parameter is required and must be an integer", name))
		return 0, false
	}
	return id, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *ExamHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *ExamHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch exam.KindOf(err) {
	case exam.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case exam.KindForbidden:
		status = http.StatusForbidden
		message = err.Error()
	case exam.KindBadRequest:
		status = http.StatusBadRequest
		message = err.Error()
	case exam.KindConflict:
		status = http.StatusConflict
		message = err.Error()
	default:
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}

	h.writeJSON(w, status, errorResponse{Error: message})
}
