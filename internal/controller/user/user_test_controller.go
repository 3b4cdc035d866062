package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/questree/internal/controller"
	"github.com/lshigami/questree/internal/dto"
	"github.com/lshigami/questree/internal/service"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService service.UserTestService
	sessionService  service.SessionService
}

func NewUserTestController(uts service.UserTestService, ss service.SessionService) *UserTestController {
	return &UserTestController{userTestService: uts, sessionService: ss}
}

func (c *UserTestController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/tests", c.GetAllTests)
	group.GET("/tests/:test_id", c.GetTestDetails)
	group.GET("/tests/:test_id/first-question", c.GetFirstQuestion)
	group.POST("/tests/:test_id/sessions", c.StartSession)

	group.GET("/sessions/:session_id", c.GetSession)
	group.GET("/sessions/:session_id/questions/:question_id", c.GetQuestion)
	group.POST("/sessions/:session_id/questions/:question_id/answer", c.SubmitAnswer)
	group.GET("/sessions/:session_id/results", c.GetResults)
}

// GetAllTests godoc
// @Summary (User) List all available tests
// @Tags User - Tests
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	tests, err := c.userTestService.GetAllTests(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve tests")
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary (User) Get a test with its question tree
// @Tags User - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test")
	if !ok {
		return
	}
	testDetails, err := c.userTestService.GetTestDetails(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve test")
		return
	}
	ctx.JSON(http.StatusOK, testDetails)
}

// GetFirstQuestion godoc
// @Summary (User) Get the first question of a test
// @Description question_id is null when the test has no questions.
// @Tags User - Tests
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.FirstQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Corrupt question tree"
// @Router /tests/{test_id}/first-question [get]
func (c *UserTestController) GetFirstQuestion(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test")
	if !ok {
		return
	}
	first, err := c.userTestService.GetFirstQuestion(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to find first question")
		return
	}
	ctx.JSON(http.StatusOK, first)
}

// StartSession godoc
// @Summary (User) Start a session on a test
// @Description Opens a new session pointing at the first question. A test without questions yields a session that is already complete.
// @Tags User - Sessions
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 201 {object} dto.SessionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/sessions [post]
func (c *UserTestController) StartSession(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test")
	if !ok {
		return
	}
	session, err := c.sessionService.StartSession(ctx.Request.Context(), testID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to start session")
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

// GetSession godoc
// @Summary (User) Get a session's state
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.SessionDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{session_id} [get]
func (c *UserTestController) GetSession(ctx *gin.Context) {
	session, err := c.sessionService.GetSession(ctx.Request.Context(), ctx.Param("session_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve session")
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// GetQuestion godoc
// @Summary (User) Show a question of the session's test
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Question ID format"
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Router /sessions/{session_id}/questions/{question_id} [get]
func (c *UserTestController) GetQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseID(ctx, "question_id", "Question")
	if !ok {
		return
	}
	question, err := c.sessionService.GetQuestion(ctx.Request.Context(), ctx.Param("session_id"), questionID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve question")
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// SubmitAnswer godoc
// @Summary (User) Answer a question
// @Description Records the choice and returns the next question, or completes the session. A missing or foreign choice re-presents the question with 422.
// @Tags User - Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param question_id path int true "Question ID"
// @Param answer body dto.SubmitAnswerRequest true "Selected choice"
// @Success 200 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Failure 409 {object} dto.ErrorResponse "Session already complete"
// @Failure 422 {object} dto.InvalidChoiceResponse "No valid choice selected"
// @Failure 500 {object} dto.ErrorResponse "Corrupt question tree"
// @Router /sessions/{session_id}/questions/{question_id}/answer [post]
func (c *UserTestController) SubmitAnswer(ctx *gin.Context) {
	questionID, ok := controller.ParseID(ctx, "question_id", "Question")
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	sessionID := ctx.Param("session_id")
	result, err := c.sessionService.SubmitAnswer(ctx.Request.Context(), sessionID, questionID, req.ChoiceID)
	if err != nil {
		var invalid *service.InvalidChoiceError
		if errors.As(err, &invalid) {
			log.Info().Str("session", sessionID).Uint("questionID", questionID).Msg("Answer rejected: no valid choice")
			ctx.JSON(http.StatusUnprocessableEntity, dto.InvalidChoiceResponse{
				Message:  service.InvalidChoiceMessage,
				Question: invalid.Question,
			})
			return
		}
		controller.RespondError(ctx, err, "Failed to submit answer")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetResults godoc
// @Summary (User) Get a completed session's answers
// @Description Answers are listed in the order they were first given. Answers to questions deleted since are left out; a deleted test yields an empty list.
// @Tags User - Sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.ResultsDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Session not complete"
// @Router /sessions/{session_id}/results [get]
func (c *UserTestController) GetResults(ctx *gin.Context) {
	results, err := c.sessionService.GetResults(ctx.Request.Context(), ctx.Param("session_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve results")
		return
	}
	ctx.JSON(http.StatusOK, results)
}
