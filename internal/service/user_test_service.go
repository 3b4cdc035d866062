package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/questree/internal/dto"
	"github.com/lshigami/questree/internal/flow"
	"github.com/lshigami/questree/internal/model"
	"github.com/lshigami/questree/internal/repository"
	"github.com/rs/zerolog/log"
)

type UserTestService interface {
	GetAllTests(ctx context.Context) ([]dto.TestSummaryDTO, error)
	GetTestDetails(ctx context.Context, testID uint) (*dto.TestResponseDTO, error)
	GetFirstQuestion(ctx context.Context, testID uint) (*dto.FirstQuestionDTO, error)
}

type userTestService struct {
	testRepo repository.TestRepository
	trees    TreeService
	flow     *flow.Controller
}

func NewUserTestService(testRepo repository.TestRepository, trees TreeService, flowCtrl *flow.Controller) UserTestService {
	return &userTestService{testRepo: testRepo, trees: trees, flow: flowCtrl}
}

func (s *userTestService) GetAllTests(ctx context.Context) ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get all tests with question count from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:            twc.Test.ID,
			Title:         twc.Test.Title,
			Description:   twc.Test.Description,
			QuestionCount: twc.QuestionCount,
			CreatedAt:     twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *userTestService) GetTestDetails(ctx context.Context, testID uint) (*dto.TestResponseDTO, error) {
	test, err := s.trees.LoadTest(ctx, testID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("Failed to get test details")
		return nil, err
	}
	return toTestDTO(test)
}

func (s *userTestService) GetFirstQuestion(ctx context.Context, testID uint) (*dto.FirstQuestionDTO, error) {
	first, ok, err := s.flow.FirstQuestion(ctx, testID)
	if err != nil {
		return nil, err
	}
	resp := &dto.FirstQuestionDTO{TestID: testID}
	if ok {
		resp.QuestionID = &first
	}
	return resp, nil
}

func toTestDTO(test *model.Test) (*dto.TestResponseDTO, error) {
	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing test details response: %w", err)
	}
	return &resp, nil
}

func toQuestionDTO(question *model.Question) (dto.QuestionDTO, error) {
	var resp dto.QuestionDTO
	if err := copier.Copy(&resp, question); err != nil {
		return dto.QuestionDTO{}, fmt.Errorf("error preparing question response: %w", err)
	}
	if resp.Choices == nil {
		resp.Choices = []dto.ChoiceDTO{}
	}
	return resp, nil
}
