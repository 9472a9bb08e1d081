package repository

import (
	"errors"

	"oraconsole/config"
	"oraconsole/models"
	"oraconsole/utils"

	"gorm.io/gorm"
)

// ContactRepository provides data access for application-owned contact profiles.
type ContactRepository interface {
	GetByUsername(tx *gorm.DB, username string) (*models.ContactProfile, error)
	Upsert(tx *gorm.DB, profile models.ContactProfile) error
	Delete(tx *gorm.DB, username string) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact profile repository instance.
func NewContactRepository() ContactRepository {
	return &contactRepository{
		db: config.DB,
	}
}

// NewContactRepositoryWithDB creates a contact repository over an
// explicit GORM handle. Used by tests.
func NewContactRepositoryWithDB(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// GetByUsername returns the contact profile for an account, or (nil, nil)
// when none exists.
func (r *contactRepository) GetByUsername(tx *gorm.DB, username string) (*models.ContactProfile, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var profile models.ContactProfile
	err := db.Where("username = ?", utils.NormalizeUsername(username)).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *contactRepository) Upsert(tx *gorm.DB, profile models.ContactProfile) error {
	db := tx
	if db == nil {
		db = r.db
	}
	profile.Username = utils.NormalizeUsername(profile.Username)
	existing, err := r.GetByUsername(db, profile.Username)
	if err != nil {
		return err
	}
	if existing == nil {
		return db.Create(&profile).Error
	}
	return db.Model(&models.ContactProfile{}).
		Where("username = ?", profile.Username).
		Updates(map[string]interface{}{
			"full_name": profile.FullName,
			"email":     profile.Email,
			"phone":     profile.Phone,
			"address":   profile.Address,
		}).Error
}

func (r *contactRepository) Delete(tx *gorm.DB, username string) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Where("username = ?", utils.NormalizeUsername(username)).
		Delete(&models.ContactProfile{}).Error
}
