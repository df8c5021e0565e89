package repository

import (
	"github.com/ltpquang/Psytrack/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	FindByID(id uint) (*model.Session, error)
	FindByIDWithTests(id uint) (*model.Session, error)
	// FindTestLink returns the SessionTest row binding testID into sessionID,
	// or gorm.ErrRecordNotFound if the test is not configured in the session.
	FindTestLink(sessionID, testID uint) (*model.SessionTest, error)
	FindTestLinks(sessionID uint) ([]model.SessionTest, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	// GORM creates the associated SessionTest rows when session.Tests is populated.
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByID(id uint) (*model.Session, error) {
	var session model.Session
	err := r.db.First(&session, id).Error
	return &session, err
}

func (r *sessionRepository) FindByIDWithTests(id uint) (*model.Session, error) {
	var session model.Session
	err := r.db.
		Preload("Tests", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_tests.position ASC")
		}).
		Preload("Tests.Test").
		First(&session, id).Error
	return &session, err
}

func (r *sessionRepository) FindTestLink(sessionID, testID uint) (*model.SessionTest, error) {
	var link model.SessionTest
	err := r.db.Where("session_id = ? AND test_id = ?", sessionID, testID).First(&link).Error
	return &link, err
}

func (r *sessionRepository) FindTestLinks(sessionID uint) ([]model.SessionTest, error) {
	var links []model.SessionTest
	err := r.db.Preload("Test").Where("session_id = ?", sessionID).Order("position ASC").Find(&links).Error
	return links, err
}
