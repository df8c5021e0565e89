package repository

import (
	"github.com/ltpquang/Psytrack/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	// CreateIfAbsent inserts the record unless a row for its
	// (participant, session, test) triple already exists. It returns the row
	// that is in the database afterwards and whether this call created it.
	// The unique index plus ON CONFLICT DO NOTHING closes the window between
	// two concurrent Start calls.
	CreateIfAbsent(progress *model.TestProgress) (*model.TestProgress, bool, error)
	FindByTriple(participantID, sessionID, testID uint) (*model.TestProgress, error)
	FindByParticipantAndSession(participantID, sessionID uint) ([]model.TestProgress, error)
	// UpdateIfInProgress writes the heartbeat fields of progress guarded on
	// the row still being in_progress, so a heartbeat that lost a race
	// against a completion cannot drag a terminal row back to in_progress.
	// It returns false when the row is already terminal.
	UpdateIfInProgress(progress *model.TestProgress) (bool, error)
	// FinishIfInProgress writes the terminal fields of progress guarded on the
	// row still being in_progress, as one atomic conditional update. It
	// returns false when a concurrent caller already finished the row.
	FinishIfInProgress(progress *model.TestProgress) (bool, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) CreateIfAbsent(progress *model.TestProgress) (*model.TestProgress, bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "participant_id"},
			{Name: "session_id"},
			{Name: "test_id"},
		},
		DoNothing: true,
	}).Create(progress)
	if res.Error != nil {
		return nil, false, res.Error
	}
	created := res.RowsAffected > 0

	// Refetch either way: on conflict the insert was a no-op and the caller
	// needs the row that won.
	existing, err := r.FindByTriple(progress.ParticipantID, progress.SessionID, progress.TestID)
	if err != nil {
		return nil, false, err
	}
	return existing, created, nil
}

func (r *progressRepository) FindByTriple(participantID, sessionID, testID uint) (*model.TestProgress, error) {
	var progress model.TestProgress
	err := r.db.
		Where("participant_id = ? AND session_id = ? AND test_id = ?", participantID, sessionID, testID).
		First(&progress).Error
	return &progress, err
}

func (r *progressRepository) FindByParticipantAndSession(participantID, sessionID uint) ([]model.TestProgress, error) {
	var records []model.TestProgress
	err := r.db.
		Where("participant_id = ? AND session_id = ?", participantID, sessionID).
		Order("test_id ASC").
		Find(&records).Error
	return records, err
}

func (r *progressRepository) UpdateIfInProgress(progress *model.TestProgress) (bool, error) {
	res := r.db.Model(&model.TestProgress{}).
		Where("id = ? AND status = ?", progress.ID, model.ProgressInProgress).
		Updates(map[string]interface{}{
			"answered_questions": progress.AnsweredQuestions,
			"time_spent_seconds": progress.TimeSpentSeconds,
			"last_activity_at":   progress.LastActivityAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *progressRepository) FinishIfInProgress(progress *model.TestProgress) (bool, error) {
	res := r.db.Model(&model.TestProgress{}).
		Where("id = ? AND status = ?", progress.ID, model.ProgressInProgress).
		Updates(map[string]interface{}{
			"status":             progress.Status,
			"completed_at":       progress.CompletedAt,
			"answered_questions": progress.AnsweredQuestions,
			"time_spent_seconds": progress.TimeSpentSeconds,
			"is_auto_completed":  progress.IsAutoCompleted,
			"last_activity_at":   progress.LastActivityAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
