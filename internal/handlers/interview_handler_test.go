package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAP-F-2025/interview-service/internal/config"
	"github.com/SAP-F-2025/interview-service/internal/events"
	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/SAP-F-2025/interview-service/internal/questions"
	"github.com/SAP-F-2025/interview-service/internal/scoring"
	"github.com/SAP-F-2025/interview-service/internal/services"
	"github.com/SAP-F-2025/interview-service/internal/session"
	"github.com/SAP-F-2025/interview-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockInterviewService is a mock implementation of services.InterviewService
type MockInterviewService struct {
	mock.Mock
}

func (m *MockInterviewService) Start(ctx context.Context, req *services.StartInterviewRequest) (*services.StartInterviewResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.StartInterviewResponse), args.Error(1)
}

func (m *MockInterviewService) SubmitAnswer(ctx context.Context, sessionID string, req *services.SubmitAnswerRequest) (*services.SubmitAnswerResponse, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmitAnswerResponse), args.Error(1)
}

func (m *MockInterviewService) GetCurrentQuestion(ctx context.Context, sessionID string) (*services.QuestionResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.QuestionResponse), args.Error(1)
}

func (m *MockInterviewService) GetStatus(ctx context.Context, sessionID string) (*models.InterviewStatusView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InterviewStatusView), args.Error(1)
}

func (m *MockInterviewService) GetResults(ctx context.Context, sessionID string) (*services.ResultsResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ResultsResponse), args.Error(1)
}

func (m *MockInterviewService) Complete(ctx context.Context, sessionID string) (*services.CompleteResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CompleteResponse), args.Error(1)
}

func (m *MockInterviewService) Export(ctx context.Context, sessionID, format string) (*services.ExportResponse, error) {
	args := m.Called(ctx, sessionID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ExportResponse), args.Error(1)
}

func (m *MockInterviewService) Abandon(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestRouter(svc services.InterviewService) *gin.Engine {
	return NewHandlerManager(svc, config.DefaultSettings(), services.NewMetrics(), testLogger()).NewRouter()
}

func doRequest(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestInterviewHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", fmt.Errorf("load: %w", services.ErrSessionNotFound), http.StatusNotFound},
		{"not active", services.ErrInterviewNotActive, http.StatusConflict},
		{"no questions", services.ErrNoQuestionsAvailable, http.StatusUnprocessableEntity},
		{"validation", services.ValidationErrors{{Field: "name", Message: "is required"}}, http.StatusBadRequest},
		{"bad format", services.ErrInvalidReportFormat, http.StatusBadRequest},
		{"business rule", services.NewBusinessRuleError("limit", "too many", nil), http.StatusUnprocessableEntity},
		{"unexpected", fmt.Errorf("redis: connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockInterviewService)
			svc.On("GetStatus", mock.Anything, "abc").Return(nil, tt.err)

			w := doRequest(newTestRouter(svc), http.MethodGet, "/api/v1/interviews/abc", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Message)
			svc.AssertExpectations(t)
		})
	}
}

func TestInterviewHandler_StartInvalidJSON(t *testing.T) {
	svc := new(MockInterviewService)
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interviews", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, w.Header().Get(utils.RequestIDHeader))
	svc.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
}

func TestInterviewHandler_RequestIDPropagates(t *testing.T) {
	svc := new(MockInterviewService)
	svc.On("Abandon", mock.Anything, "abc").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/interviews/abc", nil)
	req.Header.Set(utils.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "req-42", w.Header().Get(utils.RequestIDHeader))
}

func TestInterviewHandler_Export(t *testing.T) {
	svc := new(MockInterviewService)
	svc.On("Export", mock.Anything, "abc", "html").Return(&services.ExportResponse{
		ContentType: "text/html; charset=utf-8",
		Filename:    "Ada_20250101_000000.html",
		Data:        []byte("<!DOCTYPE html>"),
	}, nil)

	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/v1/interviews/abc/export/html", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Ada_20250101_000000.html"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "<!DOCTYPE html>", w.Body.String())
}

func TestConfigHandler(t *testing.T) {
	router := newTestRouter(new(MockInterviewService))

	w := doRequest(router, http.MethodGet, "/api/v1/config", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Roles, "Software Engineer")
	assert.Contains(t, resp.ExperienceLevels, "Senior")
	assert.Equal(t, 10, resp.Interview.MaxQuestions)
	assert.NotEmpty(t, resp.ScoringRubric)

	w = doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = doRequest(router, http.MethodGet, "/api/v1/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "interviews_started")
}

const handlerBank = `
Software Engineer:
  Easy:
    - id: e1
      text: What is a variable?
      key_points: [name, value]
  Intermediate:
    - id: i1
      text: Explain a hash map.
      key_points: [hashing, buckets]
    - id: i2
      text: What is a race condition?
      key_points: [shared state]
`

func TestInterviewFlow(t *testing.T) {
	bank, err := questions.Parse([]byte(handlerBank))
	require.NoError(t, err)

	settings := config.DefaultSettings()
	settings.InterviewSettings.MaxQuestions = 2
	metrics := services.NewMetrics()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services.NewInterviewService(services.Dependencies{
		Questions: bank,
		Scorer:    scoring.NewEngine(),
		Store:     session.NewMemoryStore(),
		Settings:  settings,
		Publisher: events.NewMockEventPublisher(logger),
		Metrics:   metrics,
		Logger:    logger,
	})
	router := NewHandlerManager(svc, settings, metrics, testLogger()).NewRouter()

	w := doRequest(router, http.MethodPost, "/api/v1/interviews", map[string]string{
		"name": "Ada", "role": "Software Engineer", "experience_level": "Mid-level",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var start services.StartInterviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &start))
	base := "/api/v1/interviews/" + start.SessionID

	w = doRequest(router, http.MethodPost, base+"/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(router, http.MethodGet, base+"/question", nil)
	require.Equal(t, http.StatusOK, w.Code)

	for i := 0; i < 2; i++ {
		w = doRequest(router, http.MethodPost, base+"/answers", map[string]string{"answer": "hashing into buckets"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodPost, base+"/answers", map[string]string{"answer": "late"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(router, http.MethodGet, base+"/results", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results services.ResultsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(t, results.Results, 2)

	w = doRequest(router, http.MethodPost, base+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(router, http.MethodGet, base+"/export/pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/metrics", nil)
	var snap services.MetricsSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, int64(1), snap.InterviewsStarted)
	assert.Equal(t, int64(2), snap.AnswersScored)
}
