package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/repository"
	"oraconsole/utils"
)

// adminPrivileges are the system privileges that mark an account as an
// administrator of this console. Holding any one of them is sufficient.
var adminPrivileges = []string{
	"CREATE USER",
	"ALTER USER",
	"CREATE ROLE",
	"CREATE PROFILE",
}

// AuthService provides console sign-in against the application
// credential table, with first-login provisioning for accounts that
// already exist in the catalog.
type AuthService interface {
	Login(username, password string) (*models.AppLoginUser, error)
	HasAdminCapabilities(username string) bool
	EncodePassword(password string) (string, error)
}

type authService struct {
	appLoginRepo  repository.AppLoginRepository
	userRepo      repository.UserRepository
	privilegeRepo repository.PrivilegeRepository
}

// NewAuthService creates a new authentication service instance.
func NewAuthService() AuthService {
	return &authService{
		appLoginRepo:  repository.NewAppLoginRepository(),
		userRepo:      repository.NewUserRepository(),
		privilegeRepo: repository.NewPrivilegeRepository(),
	}
}

// NewAuthServiceWithRepos creates an authentication service over
// explicit repositories. Used by tests.
func NewAuthServiceWithRepos(appLoginRepo repository.AppLoginRepository, userRepo repository.UserRepository, privilegeRepo repository.PrivilegeRepository) AuthService {
	return &authService{
		appLoginRepo:  appLoginRepo,
		userRepo:      userRepo,
		privilegeRepo: privilegeRepo,
	}
}

// Login verifies the supplied credentials against the application
// credential table.
//
// When no credential record exists but the account is present in the
// catalog, the record is provisioned on the spot from the supplied
// password and the login succeeds. This trusts the first password typed
// for a not-yet-provisioned account, so every such provisioning is
// logged at WARN for audit.
func (s *authService) Login(username, password string) (*models.AppLoginUser, error) {
	normalized := utils.NormalizeUsername(username)
	if normalized == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	record, err := s.appLoginRepo.FindByUsername(nil, normalized)
	if err != nil {
		logger.Errorf("Error looking up credential record for %s: %v", normalized, err)
		return nil, fmt.Errorf("login is temporarily unavailable")
	}

	if record == nil {
		account, err := s.userRepo.GetByName(normalized)
		if err != nil {
			logger.Errorf("Error resolving catalog account %s: %v", normalized, err)
			return nil, fmt.Errorf("login is temporarily unavailable")
		}
		if account == nil {
			logger.Infof("Login rejected for unknown account %s", normalized)
			return nil, fmt.Errorf("invalid username or password")
		}

		hash, err := s.EncodePassword(password)
		if err != nil {
			return nil, err
		}
		record = &models.AppLoginUser{Username: normalized, PasswordHash: hash}
		if err := s.appLoginRepo.Save(nil, *record); err != nil {
			logger.Errorf("Error provisioning credential record for %s: %v", normalized, err)
			return nil, fmt.Errorf("login is temporarily unavailable")
		}
		logger.Warnf("Auto-provisioned credential record for catalog account %s on first login", normalized)
		return record, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		logger.Infof("Login rejected for %s: password mismatch", normalized)
		return nil, fmt.Errorf("invalid username or password")
	}

	logger.Infof("Login accepted for %s", normalized)
	return record, nil
}

// HasAdminCapabilities reports whether the account holds any of the
// administrative system privileges, directly or through a role.
func (s *authService) HasAdminCapabilities(username string) bool {
	for _, privilege := range adminPrivileges {
		if s.privilegeRepo.HasPrivilege(username, privilege) {
			return true
		}
	}
	return false
}

// EncodePassword hashes a password with bcrypt at the default cost.
func (s *authService) EncodePassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
