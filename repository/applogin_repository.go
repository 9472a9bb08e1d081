package repository

import (
	"errors"

	"oraconsole/config"
	"oraconsole/models"
	"oraconsole/utils"

	"gorm.io/gorm"
)

// AppLoginRepository provides data access for application credential records.
type AppLoginRepository interface {
	FindByUsername(tx *gorm.DB, username string) (*models.AppLoginUser, error)
	Save(tx *gorm.DB, user models.AppLoginUser) error
	UpdatePassword(tx *gorm.DB, username, passwordHash string) error
	Delete(tx *gorm.DB, username string) error
}

type appLoginRepository struct {
	db *gorm.DB
}

// NewAppLoginRepository creates a new credential repository instance.
func NewAppLoginRepository() AppLoginRepository {
	return &appLoginRepository{
		db: config.DB,
	}
}

// NewAppLoginRepositoryWithDB creates a credential repository over an
// explicit GORM handle. Used by tests.
func NewAppLoginRepositoryWithDB(db *gorm.DB) AppLoginRepository {
	return &appLoginRepository{db: db}
}

// FindByUsername looks up a credential record by normalized username.
// Returns (nil, nil) when no record exists.
func (r *appLoginRepository) FindByUsername(tx *gorm.DB, username string) (*models.AppLoginUser, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var user models.AppLoginUser
	err := db.Where("username = ?", utils.NormalizeUsername(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *appLoginRepository) Save(tx *gorm.DB, user models.AppLoginUser) error {
	db := tx
	if db == nil {
		db = r.db
	}
	user.Username = utils.NormalizeUsername(user.Username)
	return db.Create(&user).Error
}

func (r *appLoginRepository) UpdatePassword(tx *gorm.DB, username, passwordHash string) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Model(&models.AppLoginUser{}).
		Where("username = ?", utils.NormalizeUsername(username)).
		Update("password_hash", passwordHash).Error
}

func (r *appLoginRepository) Delete(tx *gorm.DB, username string) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.Where("username = ?", utils.NormalizeUsername(username)).
		Delete(&models.AppLoginUser{}).Error
}
