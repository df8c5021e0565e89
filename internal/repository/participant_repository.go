package repository

import (
	"github.com/ltpquang/Psytrack/internal/model"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	Create(participant *model.Participant) error
	FindByID(id uint) (*model.Participant, error)
	// FindByIDInSession returns gorm.ErrRecordNotFound when the participant
	// exists but is registered in a different session.
	FindByIDInSession(id, sessionID uint) (*model.Participant, error)
	FindBySession(sessionID uint) ([]model.Participant, error)
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(participant *model.Participant) error {
	return r.db.Create(participant).Error
}

func (r *participantRepository) FindByID(id uint) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.First(&participant, id).Error
	return &participant, err
}

func (r *participantRepository) FindByIDInSession(id, sessionID uint) (*model.Participant, error) {
	var participant model.Participant
	err := r.db.Where("id = ? AND session_id = ?", id, sessionID).First(&participant).Error
	return &participant, err
}

func (r *participantRepository) FindBySession(sessionID uint) ([]model.Participant, error) {
	var participants []model.Participant
	err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&participants).Error
	return participants, err
}
