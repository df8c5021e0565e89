package service

import (
	"errors"
	"time"

	"github.com/ltpquang/Psytrack/internal/dto"
	"github.com/ltpquang/Psytrack/internal/model"
	"github.com/ltpquang/Psytrack/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProgressService drives a participant's attempt at a test through
// not_started -> in_progress -> {completed, auto_completed}.
//
// Expiry is lazy: every operation checks the deadline against the record it
// touches before doing anything else, so no background sweep exists and a
// caller never observes an in_progress record past its deadline. Whenever the
// deadline forces the terminal transition, completed_at is pinned to the
// stored expected_completion_at rather than the wall-clock moment the expiry
// happened to be detected.
type ProgressService interface {
	StartTest(participantID, sessionID, testID uint) (*dto.TestProgressDTO, error)
	UpdateProgress(participantID, sessionID, testID uint, req dto.ProgressUpdateDTO) (*dto.TestProgressDTO, error)
	CompleteTest(participantID, sessionID, testID uint, req dto.ProgressCompleteDTO) (*dto.TestProgressDTO, error)
	GetProgress(participantID, sessionID, testID uint) (*dto.TestProgressDTO, error)
	ListSessionProgress(participantID, sessionID uint) ([]dto.TestProgressDTO, error)
}

type progressService struct {
	progressRepo    repository.ProgressRepository
	participantRepo repository.ParticipantRepository
	sessionRepo     repository.SessionRepository
	testRepo        repository.TestRepository
	timekeeper      TimekeeperService

	// now is swappable in tests so expiry scenarios are deterministic.
	now func() time.Time
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	participantRepo repository.ParticipantRepository,
	sessionRepo repository.SessionRepository,
	testRepo repository.TestRepository,
	timekeeper TimekeeperService,
) ProgressService {
	return &progressService{
		progressRepo:    progressRepo,
		participantRepo: participantRepo,
		sessionRepo:     sessionRepo,
		testRepo:        testRepo,
		timekeeper:      timekeeper,
		now:             time.Now,
	}
}

// StartTest creates the progress record for the triple, or returns the
// existing one unchanged (idempotent start). Two concurrent starts are
// resolved by the storage unique index: the loser's insert is a no-op and it
// observes the winner's row.
func (s *progressService) StartTest(participantID, sessionID, testID uint) (*dto.TestProgressDTO, error) {
	participant, err := s.verifyMembership(participantID, sessionID)
	if err != nil {
		return nil, err
	}
	test, err := s.verifySessionTest(sessionID, testID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expected := now.Add(time.Duration(test.TimeLimitMinutes) * time.Minute)
	record := &model.TestProgress{
		ParticipantID:        participantID,
		SessionID:            sessionID,
		TestID:               testID,
		UserID:               participant.UserID,
		Status:               model.ProgressInProgress,
		StartedAt:            &now,
		ExpectedCompletionAt: &expected,
		AnsweredQuestions:    0,
		TotalQuestions:       test.QuestionCount,
		TimeLimitMinutes:     test.TimeLimitMinutes,
		LastActivityAt:       now,
	}

	stored, created, err := s.progressRepo.CreateIfAbsent(record)
	if err != nil {
		log.Error().Err(err).Uint("participantID", participantID).Uint("testID", testID).Msg("StartTest: create-if-absent failed")
		return nil, storageError(err)
	}
	if created {
		log.Info().Uint("progressID", stored.ID).Uint("participantID", participantID).Uint("testID", testID).Msg("StartTest: attempt started")
	} else {
		log.Info().Uint("progressID", stored.ID).Uint("participantID", participantID).Uint("testID", testID).Msg("StartTest: attempt already exists, returning it")
		// An abandoned earlier attempt may have run out of time since; expiry
		// is applied on every touch.
		stored, err = s.expireIfOverdue(stored)
		if err != nil {
			return nil, err
		}
	}

	resp := s.toDTO(stored, s.now())
	resp.TestName = test.Name
	return resp, nil
}

// UpdateProgress records the client's periodic heartbeat. If the deadline has
// passed, the call is converted into an auto-completion instead of being
// rejected; values supplied in that same call are still applied.
func (s *progressService) UpdateProgress(participantID, sessionID, testID uint, req dto.ProgressUpdateDTO) (*dto.TestProgressDTO, error) {
	if _, err := s.verifyMembership(participantID, sessionID); err != nil {
		return nil, err
	}
	record, err := s.loadRecord(participantID, sessionID, testID)
	if err != nil {
		return nil, err
	}
	if record.Status.Terminal() {
		return nil, conflictError("test already completed")
	}
	if err := validateProgressValues(req.AnsweredQuestions, req.TimeSpentSeconds, record.TotalQuestions); err != nil {
		return nil, err
	}

	now := s.now()
	if record.StartedAt != nil && s.timekeeper.IsExpired(*record.StartedAt, record.TimeLimitMinutes, now) {
		applyProgressValues(record, req.AnsweredQuestions, req.TimeSpentSeconds)
		if req.TimeSpentSeconds == nil {
			record.TimeSpentSeconds = int(record.ExpectedCompletionAt.Sub(*record.StartedAt) / time.Second)
		}
		if err := s.finishOverdue(record, now); err != nil {
			return nil, err
		}
		log.Info().Uint("progressID", record.ID).Msg("UpdateProgress: time limit elapsed, attempt auto-completed")
		return s.toDTO(record, now), nil
	}

	applyProgressValues(record, req.AnsweredQuestions, req.TimeSpentSeconds)
	record.LastActivityAt = now
	updated, err := s.progressRepo.UpdateIfInProgress(record)
	if err != nil {
		log.Error().Err(err).Uint("progressID", record.ID).Msg("UpdateProgress: persist failed")
		return nil, storageError(err)
	}
	if !updated {
		// A completion or expiry check finished the attempt between our load
		// and this write; the heartbeat must not resurrect the terminal row.
		return nil, conflictError("test already completed")
	}
	return s.toDTO(record, now), nil
}

// CompleteTest performs the participant's explicit submission. A submission
// arriving after the deadline still terminates the attempt, but as
// auto_completed at the stored deadline: the deadline always wins over a late
// explicit completion. time_spent_seconds is recomputed from the timestamps
// on every completion so it can never disagree with them.
func (s *progressService) CompleteTest(participantID, sessionID, testID uint, req dto.ProgressCompleteDTO) (*dto.TestProgressDTO, error) {
	if _, err := s.verifyMembership(participantID, sessionID); err != nil {
		return nil, err
	}
	record, err := s.loadRecord(participantID, sessionID, testID)
	if err != nil {
		return nil, err
	}
	if record.Status.Terminal() {
		return nil, conflictError("test already completed")
	}
	if err := validateProgressValues(req.AnsweredQuestions, nil, record.TotalQuestions); err != nil {
		return nil, err
	}
	if record.StartedAt == nil {
		return nil, conflictError("test has not been started")
	}

	now := s.now()
	applyProgressValues(record, req.AnsweredQuestions, nil)
	if s.timekeeper.IsExpired(*record.StartedAt, record.TimeLimitMinutes, now) {
		record.Status = model.ProgressAutoCompleted
		record.CompletedAt = record.ExpectedCompletionAt
		record.IsAutoCompleted = true
	} else {
		completedAt := now
		record.Status = model.ProgressCompleted
		record.CompletedAt = &completedAt
	}
	record.TimeSpentSeconds = int(record.CompletedAt.Sub(*record.StartedAt) / time.Second)
	record.LastActivityAt = now

	finished, err := s.progressRepo.FinishIfInProgress(record)
	if err != nil {
		log.Error().Err(err).Uint("progressID", record.ID).Msg("CompleteTest: terminal write failed")
		return nil, storageError(err)
	}
	if !finished {
		// A racing update or expiry check finished the attempt first.
		return nil, conflictError("test already completed")
	}
	log.Info().Uint("progressID", record.ID).Str("status", string(record.Status)).Msg("CompleteTest: attempt finished")
	return s.toDTO(record, now), nil
}

// GetProgress returns the record for one triple, auto-completing it first if
// its deadline has passed.
func (s *progressService) GetProgress(participantID, sessionID, testID uint) (*dto.TestProgressDTO, error) {
	if _, err := s.verifyMembership(participantID, sessionID); err != nil {
		return nil, err
	}
	record, err := s.loadRecord(participantID, sessionID, testID)
	if err != nil {
		return nil, err
	}
	record, err = s.expireIfOverdue(record)
	if err != nil {
		return nil, err
	}
	return s.toDTO(record, s.now()), nil
}

// ListSessionProgress returns one entry per test configured in the session.
// Tests the participant never started are reported as not_started rather than
// omitted, so dashboards always see the full roster.
func (s *progressService) ListSessionProgress(participantID, sessionID uint) ([]dto.TestProgressDTO, error) {
	if _, err := s.verifyMembership(participantID, sessionID); err != nil {
		return nil, err
	}
	links, err := s.sessionRepo.FindTestLinks(sessionID)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("ListSessionProgress: failed to load session tests")
		return nil, storageError(err)
	}
	records, err := s.progressRepo.FindByParticipantAndSession(participantID, sessionID)
	if err != nil {
		log.Error().Err(err).Uint("participantID", participantID).Msg("ListSessionProgress: failed to load progress records")
		return nil, storageError(err)
	}
	byTest := make(map[uint]*model.TestProgress, len(records))
	for i := range records {
		byTest[records[i].TestID] = &records[i]
	}

	now := s.now()
	results := make([]dto.TestProgressDTO, 0, len(links))
	for _, link := range links {
		record, started := byTest[link.TestID]
		if !started {
			results = append(results, dto.TestProgressDTO{
				ParticipantID:    participantID,
				SessionID:        sessionID,
				TestID:           link.TestID,
				TestName:         link.Test.Name,
				Status:           string(model.ProgressNotStarted),
				TotalQuestions:   link.Test.QuestionCount,
				TimeLimitMinutes: link.Test.TimeLimitMinutes,
			})
			continue
		}
		record, err = s.expireIfOverdue(record)
		if err != nil {
			return nil, err
		}
		entry := s.toDTO(record, now)
		entry.TestName = link.Test.Name
		results = append(results, *entry)
	}
	return results, nil
}

// expireIfOverdue applies lazy expiry to a loaded record: an in_progress
// record past its deadline is transitioned to auto_completed before it is
// served. Losing the terminal write to a concurrent caller is not an error
// here; the winner's row is re-read and returned.
func (s *progressService) expireIfOverdue(record *model.TestProgress) (*model.TestProgress, error) {
	if record.Status != model.ProgressInProgress || record.StartedAt == nil {
		return record, nil
	}
	now := s.now()
	if !s.timekeeper.IsExpired(*record.StartedAt, record.TimeLimitMinutes, now) {
		return record, nil
	}

	record.TimeSpentSeconds = int(record.ExpectedCompletionAt.Sub(*record.StartedAt) / time.Second)
	if err := s.finishOverdue(record, now); err != nil {
		var de *DomainError
		if errors.As(err, &de) && de.Kind == KindConflict {
			fresh, ferr := s.loadRecord(record.ParticipantID, record.SessionID, record.TestID)
			if ferr != nil {
				return nil, ferr
			}
			return fresh, nil
		}
		return nil, err
	}
	log.Info().Uint("progressID", record.ID).Msg("lazy expiry: attempt auto-completed")
	return record, nil
}

// finishOverdue writes the auto-completed terminal state. completed_at is the
// stored deadline, never the detection time, so the timestamp is identical no
// matter which operation discovered the expiry.
func (s *progressService) finishOverdue(record *model.TestProgress, now time.Time) error {
	record.Status = model.ProgressAutoCompleted
	record.CompletedAt = record.ExpectedCompletionAt
	record.IsAutoCompleted = true
	record.LastActivityAt = now

	finished, err := s.progressRepo.FinishIfInProgress(record)
	if err != nil {
		log.Error().Err(err).Uint("progressID", record.ID).Msg("auto-complete: terminal write failed")
		return storageError(err)
	}
	if !finished {
		return conflictError("test already completed")
	}
	return nil
}

func (s *progressService) loadRecord(participantID, sessionID, testID uint) (*model.TestProgress, error) {
	record, err := s.progressRepo.FindByTriple(participantID, sessionID, testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("no progress record for participant %d on test %d", participantID, testID)
		}
		return nil, storageError(err)
	}
	return record, nil
}

func (s *progressService) verifyMembership(participantID, sessionID uint) (*model.Participant, error) {
	if _, err := s.sessionRepo.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("session %d not found", sessionID)
		}
		return nil, storageError(err)
	}
	participant, err := s.participantRepo.FindByIDInSession(participantID, sessionID)
	if err == nil {
		return participant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError(err)
	}
	// Distinguish an unknown participant from one registered elsewhere.
	if _, err := s.participantRepo.FindByID(participantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("participant %d not found", participantID)
		}
		return nil, storageError(err)
	}
	return nil, preconditionError("participant %d is not registered in session %d", participantID, sessionID)
}

func (s *progressService) verifySessionTest(sessionID, testID uint) (*model.Test, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("test %d not found", testID)
		}
		return nil, storageError(err)
	}
	if _, err := s.sessionRepo.FindTestLink(sessionID, testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, preconditionError("test %d is not configured in session %d", testID, sessionID)
		}
		return nil, storageError(err)
	}
	return test, nil
}

// validateProgressValues rejects out-of-range input before any state is
// touched; a violation leaves the stored record unmodified.
func validateProgressValues(answered, timeSpent *int, totalQuestions int) error {
	if answered != nil && (*answered < 0 || *answered > totalQuestions) {
		return validationError("answered_questions", "must be between 0 and %d, got %d", totalQuestions, *answered)
	}
	if timeSpent != nil && *timeSpent < 0 {
		return validationError("time_spent_seconds", "must not be negative, got %d", *timeSpent)
	}
	return nil
}

func applyProgressValues(record *model.TestProgress, answered, timeSpent *int) {
	if answered != nil {
		record.AnsweredQuestions = *answered
	}
	if timeSpent != nil {
		record.TimeSpentSeconds = *timeSpent
	}
}

// toDTO assembles the response: stored fields plus the display fields, which
// are always computed from the persisted state and never stored.
func (s *progressService) toDTO(record *model.TestProgress, now time.Time) *dto.TestProgressDTO {
	resp := &dto.TestProgressDTO{
		ID:                   record.ID,
		ParticipantID:        record.ParticipantID,
		SessionID:            record.SessionID,
		TestID:               record.TestID,
		Status:               string(record.Status),
		StartedAt:            record.StartedAt,
		CompletedAt:          record.CompletedAt,
		ExpectedCompletionAt: record.ExpectedCompletionAt,
		AnsweredQuestions:    record.AnsweredQuestions,
		TotalQuestions:       record.TotalQuestions,
		TimeLimitMinutes:     record.TimeLimitMinutes,
		TimeSpentSeconds:     record.TimeSpentSeconds,
		IsAutoCompleted:      record.IsAutoCompleted,
	}
	if !record.LastActivityAt.IsZero() {
		lastActivity := record.LastActivityAt
		resp.LastActivityAt = &lastActivity
	}
	resp.ProgressPercentage = s.timekeeper.ProgressPercentage(record.AnsweredQuestions, record.TotalQuestions)
	if record.StartedAt != nil {
		resp.IsTimeExpired = s.timekeeper.IsExpired(*record.StartedAt, record.TimeLimitMinutes, now)
		if record.Status == model.ProgressInProgress {
			resp.TimeRemaining = s.timekeeper.RemainingSeconds(*record.StartedAt, record.TimeLimitMinutes, now)
		}
	}
	return resp
}
