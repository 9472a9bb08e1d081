package bootstrap

import (
	"fmt"

	"oraconsole/config"
	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/repository"
	"oraconsole/services"
)

// Migrate creates the application-owned tables.
func Migrate() error {
	if err := config.DB.AutoMigrate(&models.AppLoginUser{}, &models.ContactProfile{}); err != nil {
		return fmt.Errorf("failed to migrate application tables: %v", err)
	}
	return nil
}

// SeedAdmin provisions the bootstrap administrator credential so the
// console is reachable before any interactive provisioning has
// happened. A no-op when the record already exists or when no seed
// password is configured.
func SeedAdmin() error {
	if config.Cfg.SeedAdminPass == "" {
		logger.Infof("No seed administrator password configured, skipping seeding")
		return nil
	}

	repo := repository.NewAppLoginRepository()
	existing, err := repo.FindByUsername(nil, config.Cfg.SeedAdminUser)
	if err != nil {
		return fmt.Errorf("failed to check seed administrator: %v", err)
	}
	if existing != nil {
		logger.Debugf("Seed administrator %s already provisioned", config.Cfg.SeedAdminUser)
		return nil
	}

	hash, err := services.NewAuthService().EncodePassword(config.Cfg.SeedAdminPass)
	if err != nil {
		return err
	}
	if err := repo.Save(nil, models.AppLoginUser{
		Username:     config.Cfg.SeedAdminUser,
		PasswordHash: hash,
	}); err != nil {
		return fmt.Errorf("failed to seed administrator credential: %v", err)
	}
	logger.Infof("Seeded administrator credential for %s", config.Cfg.SeedAdminUser)
	return nil
}
