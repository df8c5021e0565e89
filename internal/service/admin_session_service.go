package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/ltpquang/Psytrack/internal/dto"
	"github.com/ltpquang/Psytrack/internal/model"
	"github.com/ltpquang/Psytrack/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminSessionService interface {
	CreateSession(req dto.SessionCreateDTO) (*dto.SessionResponseDTO, error)
	GetSession(id uint) (*dto.SessionResponseDTO, error)
	RegisterParticipant(sessionID uint, req dto.ParticipantRegisterDTO) (*dto.ParticipantResponseDTO, error)
	ListParticipants(sessionID uint) ([]dto.ParticipantResponseDTO, error)
}

type adminSessionService struct {
	sessionRepo     repository.SessionRepository
	participantRepo repository.ParticipantRepository
	testRepo        repository.TestRepository
}

func NewAdminSessionService(
	sessionRepo repository.SessionRepository,
	participantRepo repository.ParticipantRepository,
	testRepo repository.TestRepository,
) AdminSessionService {
	return &adminSessionService{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		testRepo:        testRepo,
	}
}

func (s *adminSessionService) CreateSession(req dto.SessionCreateDTO) (*dto.SessionResponseDTO, error) {
	seen := make(map[uint]bool, len(req.TestIDs))
	for _, id := range req.TestIDs {
		if seen[id] {
			return nil, validationError("test_ids", "test %d listed more than once", id)
		}
		seen[id] = true
	}

	tests, err := s.testRepo.FindByIDs(req.TestIDs)
	if err != nil {
		log.Error().Err(err).Msg("CreateSession: failed to load catalog tests")
		return nil, storageError(err)
	}
	if len(tests) != len(req.TestIDs) {
		found := make(map[uint]bool, len(tests))
		for _, t := range tests {
			found[t.ID] = true
		}
		for _, id := range req.TestIDs {
			if !found[id] {
				return nil, notFoundError("test %d not found", id)
			}
		}
	}

	sessionModel := model.Session{
		Name:           req.Name,
		Description:    req.Description,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		Status:         "scheduled",
	}
	for i, id := range req.TestIDs {
		sessionModel.Tests = append(sessionModel.Tests, model.SessionTest{
			TestID:   id,
			Position: i + 1,
		})
	}
	if err := s.sessionRepo.Create(&sessionModel); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateSession: failed to create session")
		return nil, storageError(err)
	}
	return s.GetSession(sessionModel.ID)
}

func (s *adminSessionService) GetSession(id uint) (*dto.SessionResponseDTO, error) {
	session, err := s.sessionRepo.FindByIDWithTests(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("session %d not found", id)
		}
		return nil, storageError(err)
	}

	resp := dto.SessionResponseDTO{
		ID:             session.ID,
		Name:           session.Name,
		Description:    session.Description,
		ScheduledStart: session.ScheduledStart,
		ScheduledEnd:   session.ScheduledEnd,
		Status:         session.Status,
		CreatedAt:      session.CreatedAt,
	}
	for _, link := range session.Tests {
		resp.Tests = append(resp.Tests, dto.SessionTestDTO{
			TestID:           link.TestID,
			Name:             link.Test.Name,
			Category:         link.Test.Category,
			TimeLimitMinutes: link.Test.TimeLimitMinutes,
			QuestionCount:    link.Test.QuestionCount,
			Position:         link.Position,
		})
	}
	return &resp, nil
}

func (s *adminSessionService) RegisterParticipant(sessionID uint, req dto.ParticipantRegisterDTO) (*dto.ParticipantResponseDTO, error) {
	if _, err := s.sessionRepo.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("session %d not found", sessionID)
		}
		return nil, storageError(err)
	}

	participant := model.Participant{
		SessionID:  sessionID,
		UserID:     req.UserID,
		FullName:   req.FullName,
		Email:      req.Email,
		AccessCode: uuid.NewString(),
	}
	if err := s.participantRepo.Create(&participant); err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Str("email", req.Email).Msg("RegisterParticipant: failed to create participant")
		return nil, storageError(err)
	}
	log.Info().Uint("participantID", participant.ID).Uint("sessionID", sessionID).Msg("RegisterParticipant: participant registered")

	var resp dto.ParticipantResponseDTO
	if err := copier.Copy(&resp, &participant); err != nil {
		return nil, storageError(err)
	}
	return &resp, nil
}

func (s *adminSessionService) ListParticipants(sessionID uint) ([]dto.ParticipantResponseDTO, error) {
	if _, err := s.sessionRepo.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("session %d not found", sessionID)
		}
		return nil, storageError(err)
	}
	participants, err := s.participantRepo.FindBySession(sessionID)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("ListParticipants: failed to list participants")
		return nil, storageError(err)
	}
	var resp []dto.ParticipantResponseDTO
	if err := copier.Copy(&resp, &participants); err != nil {
		return nil, storageError(err)
	}
	return resp, nil
}
