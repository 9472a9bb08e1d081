package services

import (
	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/repository"
)

// ProfileService provides business logic for resource profile administration.
type ProfileService interface {
	GetAllProfiles() []models.Profile
	GetProfile(profileName string) (*models.Profile, error)
	CreateProfile(profileName, sessionsPerUser, connectTime, idleTime string) error
	UpdateProfile(profileName, sessionsPerUser, connectTime, idleTime string) error
	DeleteProfile(profileName string) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new profile administration service instance.
func NewProfileService() ProfileService {
	return &profileService{
		profileRepo: repository.NewProfileRepository(),
	}
}

// NewProfileServiceWithRepo creates a profile service over an explicit
// repository. Used by tests.
func NewProfileServiceWithRepo(repo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: repo}
}

// GetAllProfiles lists the profiles that define tracked limits. Catalog
// failures degrade to an empty list so the listing page still renders.
func (s *profileService) GetAllProfiles() []models.Profile {
	profiles, err := s.profileRepo.GetAll()
	if err != nil {
		logger.Errorf("Error listing profiles: %v", err)
		return []models.Profile{}
	}
	return profiles
}

func (s *profileService) GetProfile(profileName string) (*models.Profile, error) {
	return s.profileRepo.GetByName(profileName)
}

func (s *profileService) CreateProfile(profileName, sessionsPerUser, connectTime, idleTime string) error {
	if err := s.profileRepo.Create(profileName, sessionsPerUser, connectTime, idleTime); err != nil {
		return err
	}
	logger.Infof("Created profile %s", profileName)
	return nil
}

func (s *profileService) UpdateProfile(profileName, sessionsPerUser, connectTime, idleTime string) error {
	return s.profileRepo.Alter(profileName, sessionsPerUser, connectTime, idleTime)
}

func (s *profileService) DeleteProfile(profileName string) error {
	if err := s.profileRepo.Drop(profileName); err != nil {
		return err
	}
	logger.Infof("Dropped profile %s", profileName)
	return nil
}
