package repository

import (
	"oraconsole/models"
	"oraconsole/utils"
)

// ProfileRepository provides catalog access for resource profiles. Only
// the three tracked limits (SESSIONS_PER_USER, CONNECT_TIME, IDLE_TIME)
// are surfaced.
type ProfileRepository interface {
	GetAll() ([]models.Profile, error)
	GetByName(profileName string) (*models.Profile, error)
	GetAssignedUsers(profileName string) ([]string, error)
	Create(profileName, sessionsPerUser, connectTime, idleTime string) error
	Alter(profileName, sessionsPerUser, connectTime, idleTime string) error
	Drop(profileName string) error
}

type profileRepository struct {
	catalog *Catalog
}

// NewProfileRepository creates a profile repository over the global catalog pool.
func NewProfileRepository() ProfileRepository {
	return &profileRepository{catalog: NewCatalog()}
}

// NewProfileRepositoryWithCatalog creates a profile repository over an
// explicit catalog handle. Used by tests.
func NewProfileRepositoryWithCatalog(c *Catalog) ProfileRepository {
	return &profileRepository{catalog: c}
}

// GetAll lists every profile that defines at least one tracked limit.
func (r *profileRepository) GetAll() ([]models.Profile, error) {
	names, err := r.catalog.queryStrings(`SELECT PROFILE
		FROM DBA_PROFILES
		WHERE RESOURCE_NAME IN ('SESSIONS_PER_USER', 'CONNECT_TIME', 'IDLE_TIME')
		GROUP BY PROFILE
		ORDER BY PROFILE`)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, len(names))
	for _, name := range names {
		profile, err := r.GetByName(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// GetByName composes one profile from its limit rows and assigned accounts.
func (r *profileRepository) GetByName(profileName string) (*models.Profile, error) {
	normalized := utils.NormalizeUsername(profileName)

	profile := models.Profile{ProfileName: normalized}

	users, err := r.GetAssignedUsers(normalized)
	if err != nil {
		return nil, err
	}
	profile.AssignedUsers = users

	rows, err := r.catalog.Query(`SELECT RESOURCE_NAME, LIMIT
		FROM DBA_PROFILES
		WHERE PROFILE = ?
		  AND RESOURCE_NAME IN ('SESSIONS_PER_USER', 'CONNECT_TIME', 'IDLE_TIME')`, normalized)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resourceName, limit string
		if err := rows.Scan(&resourceName, &limit); err != nil {
			return nil, err
		}
		switch resourceName {
		case "SESSIONS_PER_USER":
			profile.SessionsPerUser = limit
		case "CONNECT_TIME":
			profile.ConnectTime = limit
		case "IDLE_TIME":
			profile.IdleTime = limit
		}
	}
	return &profile, rows.Err()
}

// GetAssignedUsers lists the accounts assigned to a profile.
func (r *profileRepository) GetAssignedUsers(profileName string) ([]string, error) {
	return r.catalog.queryStrings(`SELECT USERNAME
		FROM DBA_USERS
		WHERE PROFILE = ?
		ORDER BY USERNAME`, utils.NormalizeUsername(profileName))
}

func (r *profileRepository) Create(profileName, sessionsPerUser, connectTime, idleTime string) error {
	stmt, err := BuildCreateProfile(profileName, sessionsPerUser, connectTime, idleTime)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *profileRepository) Alter(profileName, sessionsPerUser, connectTime, idleTime string) error {
	stmt, err := BuildAlterProfile(profileName, sessionsPerUser, connectTime, idleTime)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *profileRepository) Drop(profileName string) error {
	stmt, err := BuildDropProfile(profileName)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}
