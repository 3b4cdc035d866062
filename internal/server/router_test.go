package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/questree/config"
	"github.com/lshigami/questree/internal/cache"
	adminctrl "github.com/lshigami/questree/internal/controller/admin"
	userctrl "github.com/lshigami/questree/internal/controller/user"
	"github.com/lshigami/questree/internal/dto"
	"github.com/lshigami/questree/internal/flow"
	"github.com/lshigami/questree/internal/ledger"
	"github.com/lshigami/questree/internal/repository"
	"github.com/lshigami/questree/internal/service"
	"github.com/lshigami/questree/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.OpenDB(t)
	cfg := &config.Config{LogLevel: "info"}

	store, err := ledger.New(ledger.BackendPostgres, nil, db, 0)
	require.NoError(t, err)

	tests := repository.NewTestRepository(db)
	questions := repository.NewQuestionRepository(db)
	trees := service.NewTreeService(tests, cache.NewNoopTreeCache(), cfg)
	flowCtrl := flow.NewController(trees, questions, store)

	router := NewGinEngine(cfg)
	RegisterRoutes(router,
		adminctrl.NewAdminTestController(
			service.NewAdminTestService(tests, trees, db, cfg),
			service.NewQuestionService(questions, tests, trees, cfg),
		),
		userctrl.NewUserTestController(
			service.NewUserTestService(tests, trees, flowCtrl),
			service.NewSessionService(repository.NewTestSessionRepository(db), tests, questions, store, flowCtrl),
		),
	)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

// Two root questions; the first choice of Q1 reveals F1.
const scenarioB = `{
  "title": "Scenario B",
  "questions": [
    {"text": "Q1", "choices": [
      {"text": "A", "followup": {"text": "F1", "choices": [{"text": "F1A"}]}},
      {"text": "B"}
    ]},
    {"text": "Q2", "choices": [{"text": "Q2A"}]}
  ]
}`

func TestHTTP_BranchingSession(t *testing.T) {
	router := newTestRouter(t)

	var created dto.TestResponseDTO
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/admin/tests", json.RawMessage(scenarioB), &created))
	require.Len(t, created.Questions, 3)
	q1, q2, f1 := created.Questions[0], created.Questions[1], created.Questions[2]
	require.Equal(t, "F1", f1.Text)

	var first dto.FirstQuestionDTO
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tests/%d/first-question", created.ID), nil, &first))
	require.NotNil(t, first.QuestionID)
	assert.Equal(t, q1.ID, *first.QuestionID)

	var session dto.SessionDTO
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, fmt.Sprintf("/api/v1/tests/%d/sessions", created.ID), nil, &session))
	base := "/api/v1/sessions/" + session.ID

	var shown dto.QuestionDTO
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, fmt.Sprintf("%s/questions/%d", base, q1.ID), nil, &shown))
	assert.Len(t, shown.Choices, 2)

	var invalid dto.InvalidChoiceResponse
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, router, http.MethodPost, fmt.Sprintf("%s/questions/%d/answer", base, q1.ID), map[string]any{}, &invalid))
	assert.Equal(t, "You didn't select a choice.", invalid.Message)
	assert.Equal(t, q1.ID, invalid.Question.ID)

	var res dto.SubmitResultDTO
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, fmt.Sprintf("%s/questions/%d/answer", base, q1.ID), dto.SubmitAnswerRequest{ChoiceID: &q1.Choices[0].ID}, &res))
	assert.Equal(t, "next", res.Outcome)
	assert.True(t, res.Followup)
	assert.Equal(t, f1.ID, *res.NextQuestionID)

	var conflict dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, do(t, router, http.MethodGet, base+"/results", nil, &conflict))

	res = dto.SubmitResultDTO{}
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, fmt.Sprintf("%s/questions/%d/answer", base, f1.ID), dto.SubmitAnswerRequest{ChoiceID: &f1.Choices[0].ID}, &res))
	assert.Equal(t, q2.ID, *res.NextQuestionID)
	assert.False(t, res.Followup)

	res = dto.SubmitResultDTO{}
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, fmt.Sprintf("%s/questions/%d/answer", base, q2.ID), dto.SubmitAnswerRequest{ChoiceID: &q2.Choices[0].ID}, &res))
	assert.Equal(t, "complete", res.Outcome)
	assert.Equal(t, "complete", res.Session.Status)

	assert.Equal(t, http.StatusConflict, do(t, router, http.MethodPost, fmt.Sprintf("%s/questions/%d/answer", base, q2.ID), dto.SubmitAnswerRequest{ChoiceID: &q2.Choices[0].ID}, nil))

	var results dto.ResultsDTO
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, base+"/results", nil, &results))
	require.Len(t, results.Answers, 3)
	assert.Equal(t, []string{"A", "F1A", "Q2A"}, []string{results.Answers[0].ChoiceText, results.Answers[1].ChoiceText, results.Answers[2].ChoiceText})
}

func TestHTTP_AdminAuthoring(t *testing.T) {
	router := newTestRouter(t)

	var created dto.TestResponseDTO
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/admin/tests", json.RawMessage(scenarioB), &created))
	q2 := created.Questions[1]

	var bad dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/api/v1/admin/tests", map[string]any{"questions": []any{}}, &bad))
	assert.Equal(t, "Invalid request body", bad.Message)

	path := fmt.Sprintf("/api/v1/admin/tests/%d/questions", created.ID)
	var added dto.QuestionDTO
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, path, dto.AddQuestionRequest{ParentChoiceID: &q2.Choices[0].ID, Text: "Why?"}, &added))
	assert.Equal(t, http.StatusConflict, do(t, router, http.MethodPost, path, dto.AddQuestionRequest{ParentChoiceID: &q2.Choices[0].ID, Text: "Again?"}, nil))
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodPost, "/api/v1/admin/tests/999/questions", dto.AddQuestionRequest{Text: "Lost"}, nil))

	var deleted dto.DeleteQuestionResponse
	require.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/admin/questions/%d", created.Questions[0].ID), nil, &deleted))
	assert.Equal(t, 2, deleted.DeletedQuestions)

	var summaries []dto.TestSummaryDTO
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/v1/tests", nil, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].QuestionCount)

	assert.Equal(t, http.StatusNoContent, do(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/admin/tests/%d", created.ID), nil, nil))
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, fmt.Sprintf("/api/v1/tests/%d", created.ID), nil, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodGet, "/api/v1/tests/abc", nil, nil))
}
