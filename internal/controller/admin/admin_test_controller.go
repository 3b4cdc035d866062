package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/questree/internal/controller"
	"github.com/lshigami/questree/internal/dto"
	"github.com/lshigami/questree/internal/service"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
	questionService  service.QuestionService
}

func NewAdminTestController(adminTestService service.AdminTestService, questionService service.QuestionService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService, questionService: questionService}
}

func (c *AdminTestController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/tests", c.CreateTest)
	group.DELETE("/tests/:test_id", c.DeleteTest)
	group.POST("/tests/:test_id/questions", c.AddQuestion)
	group.DELETE("/questions/:question_id", c.DeleteQuestion)
}

// CreateTest godoc
// @Summary (Admin) Create a new test with its question tree
// @Description Top-level questions become root questions in the order given. A choice may carry one follow-up question, nested to any depth up to the configured limit.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test with nested questions, choices and follow-ups"
// @Success 201 {object} dto.TestResponseDTO "Test created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	testResp, err := c.adminTestService.CreateTest(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create test")
		return
	}
	ctx.JSON(http.StatusCreated, testResp)
}

// DeleteTest godoc
// @Summary (Admin) Delete a test
// @Description Deletes the test with all of its questions and choices.
// @Tags Admin - Tests
// @Param test_id path int true "Test ID"
// @Success 204 "Test deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests/{test_id} [delete]
func (c *AdminTestController) DeleteTest(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test")
	if !ok {
		return
	}
	if err := c.adminTestService.DeleteTest(ctx.Request.Context(), testID); err != nil {
		controller.RespondError(ctx, err, "Failed to delete test")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddQuestion godoc
// @Summary (Admin) Add a question to a test
// @Description Without parent_choice_id the question is appended as the last root question. With it, the question becomes the follow-up of that choice.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param question body dto.AddQuestionRequest true "Question with its choices"
// @Success 201 {object} dto.QuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or parent choice from another test"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Choice already has a follow-up question"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests/{test_id}/questions [post]
func (c *AdminTestController) AddQuestion(ctx *gin.Context) {
	testID, ok := controller.ParseID(ctx, "test_id", "Test")
	if !ok {
		return
	}
	var req dto.AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}

	question, err := c.questionService.AddQuestion(ctx.Request.Context(), testID, req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to add question")
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question and its follow-ups
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid Question ID format"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions/{question_id} [delete]
func (c *AdminTestController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := controller.ParseID(ctx, "question_id", "Question")
	if !ok {
		return
	}
	resp, err := c.questionService.DeleteQuestion(ctx.Request.Context(), questionID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to delete question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
