package service

import (
	"testing"
	"time"

	"github.com/ltpquang/Psytrack/internal/dto"
	"github.com/ltpquang/Psytrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---- in-memory fakes -------------------------------------------------------

type tripleKey struct {
	participantID, sessionID, testID uint
}

type fakeProgressRepo struct {
	nextID  uint
	records map[tripleKey]model.TestProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[tripleKey]model.TestProgress)}
}

func (r *fakeProgressRepo) CreateIfAbsent(progress *model.TestProgress) (*model.TestProgress, bool, error) {
	key := tripleKey{progress.ParticipantID, progress.SessionID, progress.TestID}
	if existing, ok := r.records[key]; ok {
		out := existing
		return &out, false, nil
	}
	r.nextID++
	progress.ID = r.nextID
	r.records[key] = *progress
	out := *progress
	return &out, true, nil
}

func (r *fakeProgressRepo) FindByTriple(participantID, sessionID, testID uint) (*model.TestProgress, error) {
	if existing, ok := r.records[tripleKey{participantID, sessionID, testID}]; ok {
		out := existing
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProgressRepo) FindByParticipantAndSession(participantID, sessionID uint) ([]model.TestProgress, error) {
	var out []model.TestProgress
	for key, rec := range r.records {
		if key.participantID == participantID && key.sessionID == sessionID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) UpdateIfInProgress(progress *model.TestProgress) (bool, error) {
	key := tripleKey{progress.ParticipantID, progress.SessionID, progress.TestID}
	existing, ok := r.records[key]
	if !ok || existing.Status != model.ProgressInProgress {
		return false, nil
	}
	existing.AnsweredQuestions = progress.AnsweredQuestions
	existing.TimeSpentSeconds = progress.TimeSpentSeconds
	existing.LastActivityAt = progress.LastActivityAt
	r.records[key] = existing
	return true, nil
}

func (r *fakeProgressRepo) FinishIfInProgress(progress *model.TestProgress) (bool, error) {
	key := tripleKey{progress.ParticipantID, progress.SessionID, progress.TestID}
	existing, ok := r.records[key]
	if !ok || existing.Status != model.ProgressInProgress {
		return false, nil
	}
	existing.Status = progress.Status
	existing.CompletedAt = progress.CompletedAt
	existing.AnsweredQuestions = progress.AnsweredQuestions
	existing.TimeSpentSeconds = progress.TimeSpentSeconds
	existing.IsAutoCompleted = progress.IsAutoCompleted
	existing.LastActivityAt = progress.LastActivityAt
	r.records[key] = existing
	return true, nil
}

func (r *fakeProgressRepo) stored(participantID, sessionID, testID uint) model.TestProgress {
	return r.records[tripleKey{participantID, sessionID, testID}]
}

type fakeParticipantRepo struct {
	participants map[uint]model.Participant
}

func (r *fakeParticipantRepo) Create(p *model.Participant) error {
	r.participants[p.ID] = *p
	return nil
}

func (r *fakeParticipantRepo) FindByID(id uint) (*model.Participant, error) {
	if p, ok := r.participants[id]; ok {
		out := p
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeParticipantRepo) FindByIDInSession(id, sessionID uint) (*model.Participant, error) {
	if p, ok := r.participants[id]; ok && p.SessionID == sessionID {
		out := p
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeParticipantRepo) FindBySession(sessionID uint) ([]model.Participant, error) {
	var out []model.Participant
	for _, p := range r.participants {
		if p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[uint]model.Session
	links    []model.SessionTest
}

func (r *fakeSessionRepo) Create(s *model.Session) error {
	r.sessions[s.ID] = *s
	return nil
}

func (r *fakeSessionRepo) FindByID(id uint) (*model.Session, error) {
	if s, ok := r.sessions[id]; ok {
		out := s
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) FindByIDWithTests(id uint) (*model.Session, error) {
	return r.FindByID(id)
}

func (r *fakeSessionRepo) FindTestLink(sessionID, testID uint) (*model.SessionTest, error) {
	for _, link := range r.links {
		if link.SessionID == sessionID && link.TestID == testID {
			out := link
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionRepo) FindTestLinks(sessionID uint) ([]model.SessionTest, error) {
	var out []model.SessionTest
	for _, link := range r.links {
		if link.SessionID == sessionID {
			out = append(out, link)
		}
	}
	return out, nil
}

type fakeTestRepo struct {
	tests map[uint]model.Test
}

func (r *fakeTestRepo) Create(t *model.Test) error {
	r.tests[t.ID] = *t
	return nil
}

func (r *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	if t, ok := r.tests[id]; ok {
		out := t
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTestRepo) FindByIDs(ids []uint) ([]model.Test, error) {
	var out []model.Test
	for _, id := range ids {
		if t, ok := r.tests[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTestRepo) FindAll() ([]model.Test, error) {
	var out []model.Test
	for _, t := range r.tests {
		out = append(out, t)
	}
	return out, nil
}

// ---- fixture ---------------------------------------------------------------

const (
	sessionID     = uint(1)
	participantID = uint(10)
	testID        = uint(100)
	otherTestID   = uint(101)
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *progressService
	progress *fakeProgressRepo
	clock    time.Time
}

// newFixture wires the service against fakes: one session holding two
// 30-minute, 10-question tests and one registered participant. The service
// clock is frozen at t0 and advanced with advance().
func newFixture(t *testing.T) *fixture {
	t.Helper()

	progressRepo := newFakeProgressRepo()
	participantRepo := &fakeParticipantRepo{participants: map[uint]model.Participant{
		participantID: {ID: participantID, SessionID: sessionID, FullName: "Dana Vu", Email: "dana@example.com"},
	}}
	tests := map[uint]model.Test{
		testID:      {ID: testID, Name: "Numerical Reasoning", TimeLimitMinutes: 30, QuestionCount: 10},
		otherTestID: {ID: otherTestID, Name: "Verbal Reasoning", TimeLimitMinutes: 20, QuestionCount: 8},
	}
	sessionRepo := &fakeSessionRepo{
		sessions: map[uint]model.Session{sessionID: {ID: sessionID, Name: "March intake"}},
		links: []model.SessionTest{
			{ID: 1, SessionID: sessionID, TestID: testID, Test: tests[testID], Position: 1},
			{ID: 2, SessionID: sessionID, TestID: otherTestID, Test: tests[otherTestID], Position: 2},
		},
	}
	testRepo := &fakeTestRepo{tests: tests}

	svc := NewProgressService(progressRepo, participantRepo, sessionRepo, testRepo, NewTimekeeperService()).(*progressService)
	f := &fixture{svc: svc, progress: progressRepo, clock: t0}
	svc.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = t0.Add(d)
}

func intPtr(v int) *int { return &v }

// ---- start -----------------------------------------------------------------

func TestStartTestCreatesRecord(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	assert.Equal(t, string(model.ProgressInProgress), resp.Status)
	require.NotNil(t, resp.StartedAt)
	assert.True(t, resp.StartedAt.Equal(t0))
	require.NotNil(t, resp.ExpectedCompletionAt)
	assert.True(t, resp.ExpectedCompletionAt.Equal(t0.Add(30*time.Minute)))
	assert.Equal(t, 0, resp.AnsweredQuestions)
	assert.Equal(t, 10, resp.TotalQuestions)
	assert.Equal(t, 30, resp.TimeLimitMinutes)
	assert.Equal(t, 1800, resp.TimeRemaining)
	assert.Equal(t, 0, resp.ProgressPercentage)
	assert.False(t, resp.IsTimeExpired)
	assert.Equal(t, "Numerical Reasoning", resp.TestName)
}

func TestStartTestIsIdempotent(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	f.advance(5 * time.Minute)
	_, err = f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(3)})
	require.NoError(t, err)

	f.advance(10 * time.Minute)
	second, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	// Same record, original start time; only display fields move.
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.StartedAt.Equal(t0))
	assert.Equal(t, 3, second.AnsweredQuestions)
	assert.Equal(t, 1200, second.TimeRemaining)
	assert.Len(t, f.progress.records, 1)
}

func TestStartTestSnapshotIgnoresLaterCatalogEdits(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	// Shrinking the catalog test must not touch the in-flight attempt.
	edited := f.svc.testRepo.(*fakeTestRepo).tests[testID]
	edited.TimeLimitMinutes = 5
	edited.QuestionCount = 3
	f.svc.testRepo.(*fakeTestRepo).tests[testID] = edited

	f.advance(10 * time.Minute)
	resp, err := f.svc.GetProgress(participantID, sessionID, testID)
	require.NoError(t, err)
	assert.Equal(t, string(model.ProgressInProgress), resp.Status)
	assert.Equal(t, 10, resp.TotalQuestions)
	assert.Equal(t, 30, resp.TimeLimitMinutes)
}

func TestStartTestPreconditions(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.StartTest(999, sessionID, testID)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = f.svc.StartTest(participantID, 999, testID)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = f.svc.StartTest(participantID, sessionID, 999)
	assert.Equal(t, KindNotFound, KindOf(err))

	// Catalog test exists but is not configured in this session.
	f.svc.testRepo.(*fakeTestRepo).tests[500] = model.Test{ID: 500, Name: "Unscheduled", TimeLimitMinutes: 10, QuestionCount: 5}
	_, err = f.svc.StartTest(participantID, sessionID, 500)
	assert.Equal(t, KindPrecondition, KindOf(err))

	// Participant registered in a different session.
	f.svc.participantRepo.(*fakeParticipantRepo).participants[11] = model.Participant{ID: 11, SessionID: 2}
	f.svc.sessionRepo.(*fakeSessionRepo).sessions[2] = model.Session{ID: 2}
	_, err = f.svc.StartTest(11, sessionID, testID)
	assert.Equal(t, KindPrecondition, KindOf(err))
}

// ---- update ----------------------------------------------------------------

func TestUpdateProgressAppliesValues(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	f.advance(10 * time.Minute)
	resp, err := f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{
		AnsweredQuestions: intPtr(5),
		TimeSpentSeconds:  intPtr(600),
	})
	require.NoError(t, err)

	assert.Equal(t, string(model.ProgressInProgress), resp.Status)
	assert.Equal(t, 5, resp.AnsweredQuestions)
	assert.Equal(t, 600, resp.TimeSpentSeconds)
	assert.Equal(t, 1200, resp.TimeRemaining)
	assert.Equal(t, 50, resp.ProgressPercentage)
	require.NotNil(t, resp.LastActivityAt)
	assert.True(t, resp.LastActivityAt.Equal(t0.Add(10*time.Minute)))
}

func TestUpdateProgressRejectsOutOfRangeValues(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	f.advance(5 * time.Minute)
	_, err = f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(4)})
	require.NoError(t, err)

	// One past the total is rejected, not clamped.
	_, err = f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(11)})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{TimeSpentSeconds: intPtr(-1)})
	assert.Equal(t, KindValidation, KindOf(err))

	// The rejected calls left the record untouched.
	stored := f.progress.stored(participantID, sessionID, testID)
	assert.Equal(t, 4, stored.AnsweredQuestions)
	assert.Equal(t, model.ProgressInProgress, stored.Status)

	// Exactly the total is accepted.
	resp, err := f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.AnsweredQuestions)
	assert.Equal(t, 100, resp.ProgressPercentage)
}

func TestUpdateProgressWithoutRecord(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(1)})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUpdateProgressAutoCompletesAfterDeadline(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	f.advance(10 * time.Minute)
	_, err = f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(5)})
	require.NoError(t, err)

	// Heartbeat arriving past the deadline turns into an auto-completion; the
	// values it carried are still applied.
	f.advance(35 * time.Minute)
	resp, err := f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(8)})
	require.NoError(t, err)

	assert.Equal(t, string(model.ProgressAutoCompleted), resp.Status)
	assert.True(t, resp.IsAutoCompleted)
	assert.Equal(t, 8, resp.AnsweredQuestions)
	require.NotNil(t, resp.CompletedAt)
	assert.True(t, resp.CompletedAt.Equal(t0.Add(30*time.Minute)), "completed_at must be the deadline, not the detection time")
	assert.Equal(t, 0, resp.TimeRemaining)
	assert.True(t, resp.IsTimeExpired)

	// The attempt is terminal now; a late explicit submission is a conflict.
	_, err = f.svc.CompleteTest(participantID, sessionID, testID, dto.ProgressCompleteDTO{})
	assert.Equal(t, KindConflict, KindOf(err))
}

// racingProgressRepo lets a test splice a concurrent terminal transition in
// between UpdateProgress's load and its persist.
type racingProgressRepo struct {
	*fakeProgressRepo
	beforePersist func()
	fired         bool
}

func (r *racingProgressRepo) UpdateIfInProgress(progress *model.TestProgress) (bool, error) {
	if !r.fired {
		r.fired = true
		r.beforePersist()
	}
	return r.fakeProgressRepo.UpdateIfInProgress(progress)
}

func TestUpdateProgressLosingRaceAgainstCompletionDoesNotResurrectRecord(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	// A submission commits after the heartbeat has loaded the row but before
	// it writes.
	completedAt := t0.Add(12 * time.Minute)
	racing := &racingProgressRepo{
		fakeProgressRepo: f.progress,
		beforePersist: func() {
			key := tripleKey{participantID, sessionID, testID}
			rec := f.progress.records[key]
			rec.Status = model.ProgressCompleted
			rec.CompletedAt = &completedAt
			rec.AnsweredQuestions = 10
			rec.TimeSpentSeconds = 720
			f.progress.records[key] = rec
		},
	}
	f.svc.progressRepo = racing

	f.advance(12 * time.Minute)
	_, err = f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(6)})
	assert.Equal(t, KindConflict, KindOf(err))

	// The terminal row survives the lost heartbeat untouched.
	stored := f.progress.stored(participantID, sessionID, testID)
	assert.Equal(t, model.ProgressCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, stored.CompletedAt.Equal(completedAt))
	assert.Equal(t, 10, stored.AnsweredQuestions)
	assert.Equal(t, 720, stored.TimeSpentSeconds)
}

// ---- complete --------------------------------------------------------------

func TestCompleteTestBeforeDeadline(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	// A client-reported time that disagrees with the server timestamps.
	f.advance(10 * time.Minute)
	_, err = f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{TimeSpentSeconds: intPtr(9999)})
	require.NoError(t, err)

	f.advance(20 * time.Minute)
	resp, err := f.svc.CompleteTest(participantID, sessionID, testID, dto.ProgressCompleteDTO{AnsweredQuestions: intPtr(10)})
	require.NoError(t, err)

	assert.Equal(t, string(model.ProgressCompleted), resp.Status)
	assert.False(t, resp.IsAutoCompleted)
	require.NotNil(t, resp.CompletedAt)
	assert.True(t, resp.CompletedAt.Equal(t0.Add(20*time.Minute)))
	// Recomputed from completed_at - started_at, superseding the heartbeat value.
	assert.Equal(t, 1200, resp.TimeSpentSeconds)
	assert.Equal(t, 10, resp.AnsweredQuestions)
	assert.Equal(t, 100, resp.ProgressPercentage)
}

func TestCompleteTestAfterDeadlineBecomesAutoCompleted(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	f.advance(31 * time.Minute)
	resp, err := f.svc.CompleteTest(participantID, sessionID, testID, dto.ProgressCompleteDTO{AnsweredQuestions: intPtr(7)})
	require.NoError(t, err)

	// The deadline wins over the explicit completion request.
	assert.Equal(t, string(model.ProgressAutoCompleted), resp.Status)
	assert.True(t, resp.IsAutoCompleted)
	assert.True(t, resp.CompletedAt.Equal(t0.Add(30*time.Minute)))
	assert.Equal(t, 1800, resp.TimeSpentSeconds)
	assert.Equal(t, 7, resp.AnsweredQuestions)
}

func TestCompleteTestTwiceIsConflict(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	f.advance(5 * time.Minute)
	_, err = f.svc.CompleteTest(participantID, sessionID, testID, dto.ProgressCompleteDTO{})
	require.NoError(t, err)

	_, err = f.svc.CompleteTest(participantID, sessionID, testID, dto.ProgressCompleteDTO{})
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(2)})
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCompleteTestRejectsOutOfRangeAnswered(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	f.advance(5 * time.Minute)
	_, err = f.svc.CompleteTest(participantID, sessionID, testID, dto.ProgressCompleteDTO{AnsweredQuestions: intPtr(11)})
	assert.Equal(t, KindValidation, KindOf(err))

	stored := f.progress.stored(participantID, sessionID, testID)
	assert.Equal(t, model.ProgressInProgress, stored.Status)
	assert.Nil(t, stored.CompletedAt)
}

// ---- read ------------------------------------------------------------------

func TestGetProgressAppliesLazyExpiry(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	f.advance(40 * time.Minute)
	resp, err := f.svc.GetProgress(participantID, sessionID, testID)
	require.NoError(t, err)

	assert.Equal(t, string(model.ProgressAutoCompleted), resp.Status)
	assert.True(t, resp.CompletedAt.Equal(t0.Add(30*time.Minute)))
	assert.Equal(t, 1800, resp.TimeSpentSeconds)

	// The transition was persisted, not just rendered.
	stored := f.progress.stored(participantID, sessionID, testID)
	assert.Equal(t, model.ProgressAutoCompleted, stored.Status)
	assert.True(t, stored.IsAutoCompleted)
	assert.True(t, stored.CompletedAt.Equal(t0.Add(30*time.Minute)))
}

func TestGetProgressUnknownRecord(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetProgress(participantID, sessionID, testID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListSessionProgressCoversAllSessionTests(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StartTest(participantID, sessionID, testID)
	require.NoError(t, err)

	f.advance(45 * time.Minute)
	entries, err := f.svc.ListSessionProgress(participantID, sessionID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byTest := make(map[uint]dto.TestProgressDTO, len(entries))
	for _, e := range entries {
		byTest[e.TestID] = e
	}

	started := byTest[testID]
	assert.Equal(t, string(model.ProgressAutoCompleted), started.Status)
	assert.True(t, started.CompletedAt.Equal(t0.Add(30*time.Minute)))
	assert.Equal(t, "Numerical Reasoning", started.TestName)

	// The never-started test is reported, not omitted.
	notStarted := byTest[otherTestID]
	assert.Equal(t, string(model.ProgressNotStarted), notStarted.Status)
	assert.Equal(t, 8, notStarted.TotalQuestions)
	assert.Equal(t, 20, notStarted.TimeLimitMinutes)
	assert.Nil(t, notStarted.StartedAt)
	assert.Equal(t, "Verbal Reasoning", notStarted.TestName)
}

// ---- determinism across discovery paths ------------------------------------

// Whichever operation discovers the expiry, completed_at must equal the
// stored deadline exactly.
func TestAutoCompleteTimestampIsDeterministic(t *testing.T) {
	deadlineAt := t0.Add(30 * time.Minute)

	discover := map[string]func(f *fixture) *dto.TestProgressDTO{
		"update": func(f *fixture) *dto.TestProgressDTO {
			resp, err := f.svc.UpdateProgress(participantID, sessionID, testID, dto.ProgressUpdateDTO{AnsweredQuestions: intPtr(2)})
			require.NoError(t, err)
			return resp
		},
		"complete": func(f *fixture) *dto.TestProgressDTO {
			resp, err := f.svc.CompleteTest(participantID, sessionID, testID, dto.ProgressCompleteDTO{})
			require.NoError(t, err)
			return resp
		},
		"read": func(f *fixture) *dto.TestProgressDTO {
			resp, err := f.svc.GetProgress(participantID, sessionID, testID)
			require.NoError(t, err)
			return resp
		},
		"start": func(f *fixture) *dto.TestProgressDTO {
			resp, err := f.svc.StartTest(participantID, sessionID, testID)
			require.NoError(t, err)
			return resp
		},
	}

	for name, op := range discover {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.StartTest(participantID, sessionID, testID)
			require.NoError(t, err)

			// Each path detects the expiry at a different real moment.
			f.advance(30*time.Minute + time.Duration(len(name))*time.Minute)
			resp := op(f)

			assert.Equal(t, string(model.ProgressAutoCompleted), resp.Status)
			require.NotNil(t, resp.CompletedAt)
			assert.True(t, resp.CompletedAt.Equal(deadlineAt))

			stored := f.progress.stored(participantID, sessionID, testID)
			assert.True(t, stored.CompletedAt.Equal(deadlineAt))
		})
	}
}
