package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"github.com/ltpquang/Psytrack/internal/dto"
	"github.com/ltpquang/Psytrack/internal/model"
	"github.com/ltpquang/Psytrack/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	GetTest(id uint) (*dto.TestResponseDTO, error)
	ListTests() ([]dto.TestResponseDTO, error)
}

type adminTestService struct {
	testRepo repository.TestRepository
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo}
}

func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	if req.TimeLimitMinutes < 1 {
		return nil, validationError("time_limit_minutes", "must be at least 1, got %d", req.TimeLimitMinutes)
	}
	if req.QuestionCount < 1 {
		return nil, validationError("question_count", "must be at least 1, got %d", req.QuestionCount)
	}

	testModel := model.Test{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		TimeLimitMinutes: req.TimeLimitMinutes,
		QuestionCount:    req.QuestionCount,
	}
	if err := s.testRepo.Create(&testModel); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateTest: failed to create catalog test")
		return nil, storageError(err)
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, &testModel); err != nil {
		log.Error().Err(err).Msg("CreateTest: failed to copy Test model to response DTO")
		return nil, storageError(err)
	}
	return &resp, nil
}

func (s *adminTestService) GetTest(id uint) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("test %d not found", id)
		}
		return nil, storageError(err)
	}
	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		return nil, storageError(err)
	}
	return &resp, nil
}

func (s *adminTestService) ListTests() ([]dto.TestResponseDTO, error) {
	tests, err := s.testRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("ListTests: failed to list catalog tests")
		return nil, storageError(err)
	}
	var resp []dto.TestResponseDTO
	if err := copier.Copy(&resp, &tests); err != nil {
		return nil, storageError(err)
	}
	return resp, nil
}
