package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/handler"
	"studyquiz/internal/middleware"
	"studyquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type MockSessionService struct {
	StartSessionFunc   func(ctx context.Context, userID string, req *dto.StartSessionRequest) (*dto.SessionResponse, error)
	GetSessionFunc     func(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	SubmitAnswerFunc   func(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest) (*dto.AnswerFeedbackResponse, error)
	AdvanceFunc        func(ctx context.Context, sessionID string) (*dto.AdvanceResponse, error)
	ToggleFlagFunc     func(ctx context.Context, sessionID string, req *dto.ToggleFlagRequest) (*dto.ToggleFlagResponse, error)
	FinalizeFunc       func(ctx context.Context, sessionID string) (*dto.ScoreReportResponse, error)
	GetReportFunc      func(ctx context.Context, sessionID string) (*dto.ScoreReportResponse, error)
	GetUserResultsFunc func(ctx context.Context, userID string) ([]*dto.TestResultResponse, error)
}

func (m *MockSessionService) StartSession(ctx context.Context, userID string, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, userID, req)
	}
	panic("MockSessionService.StartSessionFunc not implemented")
}
func (m *MockSessionService) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	panic("MockSessionService.GetSessionFunc not implemented")
}
func (m *MockSessionService) SubmitAnswer(ctx context.Context, sessionID string, req *dto.SubmitAnswerRequest) (*dto.AnswerFeedbackResponse, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, sessionID, req)
	}
	panic("MockSessionService.SubmitAnswerFunc not implemented")
}
func (m *MockSessionService) Advance(ctx context.Context, sessionID string) (*dto.AdvanceResponse, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, sessionID)
	}
	panic("MockSessionService.AdvanceFunc not implemented")
}
func (m *MockSessionService) ToggleFlag(ctx context.Context, sessionID string, req *dto.ToggleFlagRequest) (*dto.ToggleFlagResponse, error) {
	if m.ToggleFlagFunc != nil {
		return m.ToggleFlagFunc(ctx, sessionID, req)
	}
	panic("MockSessionService.ToggleFlagFunc not implemented")
}
func (m *MockSessionService) Finalize(ctx context.Context, sessionID string) (*dto.ScoreReportResponse, error) {
	if m.FinalizeFunc != nil {
		return m.FinalizeFunc(ctx, sessionID)
	}
	panic("MockSessionService.FinalizeFunc not implemented")
}
func (m *MockSessionService) GetReport(ctx context.Context, sessionID string) (*dto.ScoreReportResponse, error) {
	if m.GetReportFunc != nil {
		return m.GetReportFunc(ctx, sessionID)
	}
	panic("MockSessionService.GetReportFunc not implemented")
}
func (m *MockSessionService) GetUserResults(ctx context.Context, userID string) ([]*dto.TestResultResponse, error) {
	if m.GetUserResultsFunc != nil {
		return m.GetUserResultsFunc(ctx, userID)
	}
	panic("MockSessionService.GetUserResultsFunc not implemented")
}

const validSessionID = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"

func newSessionTestApp(svc *MockSessionService, userID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewSessionHandler(svc, validation.NewValidator())

	withUser := func(inner fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if userID != "" {
				c.Locals(middleware.UserIDKey, userID)
			}
			return inner(c)
		}
	}

	app.Post("/api/sessions", withUser(h.StartSession))
	app.Get("/api/sessions/:id", withUser(h.GetSession))
	app.Post("/api/sessions/:id/answers", withUser(h.SubmitAnswer))
	app.Post("/api/sessions/:id/advance", withUser(h.Advance))
	app.Post("/api/sessions/:id/flags", withUser(h.ToggleFlag))
	app.Post("/api/sessions/:id/finalize", withUser(h.Finalize))
	app.Get("/api/sessions/:id/report", withUser(h.GetReport))
	app.Get("/api/users/me/results", withUser(h.GetMyResults))
	return app
}

func TestSessionHandler_StartSession(t *testing.T) {
	svc := &MockSessionService{}
	svc.StartSessionFunc = func(_ context.Context, userID string, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
		assert.Equal(t, "user1", userID)
		assert.Equal(t, "E01-C00", req.ChapterID)
		return &dto.SessionResponse{
			SessionID: validSessionID,
			BookID:    req.BookID,
			ChapterID: req.ChapterID,
			State:     "in_progress",
			Questions: []*dto.SessionQuestionResponse{
				{QuestionID: "E01-C00-01-001", Options: []string{"動詞", "形容詞", "名詞", "副詞"}},
			},
		}, nil
	}
	app := newSessionTestApp(svc, "user1")

	body, _ := json.Marshal(dto.StartSessionRequest{BookID: "eng-01", ChapterID: "E01-C00"})
	req := httptest.NewRequest("POST", "/api/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var got dto.SessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, validSessionID, got.SessionID)
	assert.Len(t, got.Questions, 1)

	// The client-facing payload never carries the correct answer.
	raw, _ := json.Marshal(got.Questions[0])
	assert.NotContains(t, string(raw), "correct")
}

func TestSessionHandler_StartSession_ValidationFailure(t *testing.T) {
	app := newSessionTestApp(&MockSessionService{}, "")

	body, _ := json.Marshal(dto.StartSessionRequest{BookID: "", ChapterID: ""})
	req := httptest.NewRequest("POST", "/api/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	payload, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(payload), string(domain.CodeValidation))
}

func TestSessionHandler_StartSession_ChapterNotFound(t *testing.T) {
	svc := &MockSessionService{}
	svc.StartSessionFunc = func(context.Context, string, *dto.StartSessionRequest) (*dto.SessionResponse, error) {
		return nil, domain.NewNotFoundError("No questions exist for this chapter. Select a different chapter.")
	}
	app := newSessionTestApp(svc, "")

	body, _ := json.Marshal(dto.StartSessionRequest{BookID: "eng-01", ChapterID: "E99-C99"})
	req := httptest.NewRequest("POST", "/api/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSessionHandler_SubmitAnswer(t *testing.T) {
	svc := &MockSessionService{}
	svc.SubmitAnswerFunc = func(_ context.Context, sessionID string, req *dto.SubmitAnswerRequest) (*dto.AnswerFeedbackResponse, error) {
		assert.Equal(t, validSessionID, sessionID)
		return &dto.AnswerFeedbackResponse{IsCorrect: true, CorrectText: req.Answer}, nil
	}
	app := newSessionTestApp(svc, "")

	body, _ := json.Marshal(dto.SubmitAnswerRequest{QuestionID: "E01-C00-01-001", Answer: "形容詞"})
	req := httptest.NewRequest("POST", "/api/sessions/"+validSessionID+"/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var feedback dto.AnswerFeedbackResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&feedback))
	assert.True(t, feedback.IsCorrect)
}

func TestSessionHandler_SubmitAnswer_UnknownSession(t *testing.T) {
	svc := &MockSessionService{}
	svc.SubmitAnswerFunc = func(_ context.Context, sessionID string, _ *dto.SubmitAnswerRequest) (*dto.AnswerFeedbackResponse, error) {
		return nil, domain.NewSessionNotFoundError(sessionID)
	}
	app := newSessionTestApp(svc, "")

	body, _ := json.Marshal(dto.SubmitAnswerRequest{QuestionID: "q1", Answer: "a"})
	req := httptest.NewRequest("POST", "/api/sessions/"+validSessionID+"/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	payload, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(payload), string(domain.CodeSessionNotFound))
}

func TestSessionHandler_SubmitAnswer_BadSessionID(t *testing.T) {
	app := newSessionTestApp(&MockSessionService{}, "")

	body, _ := json.Marshal(dto.SubmitAnswerRequest{QuestionID: "q1", Answer: "a"})
	req := httptest.NewRequest("POST", "/api/sessions/not-a-ulid/answers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSessionHandler_Finalize(t *testing.T) {
	svc := &MockSessionService{}
	svc.FinalizeFunc = func(_ context.Context, sessionID string) (*dto.ScoreReportResponse, error) {
		return &dto.ScoreReportResponse{SessionID: sessionID, CorrectCount: 7, Total: 10, Percentage: 70}, nil
	}
	app := newSessionTestApp(svc, "")

	req := httptest.NewRequest("POST", "/api/sessions/"+validSessionID+"/finalize", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var report dto.ScoreReportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 70, report.Percentage)
}

func TestSessionHandler_GetReport_NotCompleted(t *testing.T) {
	svc := &MockSessionService{}
	svc.GetReportFunc = func(context.Context, string) (*dto.ScoreReportResponse, error) {
		return nil, domain.NewInvalidStateError("report is not available in state in_progress")
	}
	app := newSessionTestApp(svc, "")

	req := httptest.NewRequest("GET", "/api/sessions/"+validSessionID+"/report", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSessionHandler_GetMyResults(t *testing.T) {
	svc := &MockSessionService{}
	svc.GetUserResultsFunc = func(_ context.Context, userID string) ([]*dto.TestResultResponse, error) {
		assert.Equal(t, "user1", userID)
		return []*dto.TestResultResponse{{SessionID: validSessionID, Percentage: 80}}, nil
	}
	app := newSessionTestApp(svc, "user1")

	req := httptest.NewRequest("GET", "/api/users/me/results", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var results []*dto.TestResultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	require.Len(t, results, 1)
	assert.Equal(t, 80, results[0].Percentage)
}

func TestSessionHandler_GetMyResults_Anonymous(t *testing.T) {
	app := newSessionTestApp(&MockSessionService{}, "")

	req := httptest.NewRequest("GET", "/api/users/me/results", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
