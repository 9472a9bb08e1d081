package services

import (
	"fmt"

	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/repository"
	"oraconsole/utils"
)

// UserService provides business logic for database account administration.
type UserService interface {
	GetAllUsers(currentUser string) []models.Account
	GetUser(username string) (*models.Account, error)
	GetUserRoles(username string) []string
	GetAvailableTablespaces() []string
	CreateUser(username, password, defaultTablespace, temporaryTablespace, quota string) error
	UpdateUser(username, password, defaultTablespace, temporaryTablespace, quota, profile string) error
	UpdateContact(username string, contact models.ContactProfile) error
	LockUser(username string) error
	UnlockUser(username string) error
	DeleteUser(username string) error
	AddToAppLogin(username, password string) error
}

type userService struct {
	userRepo      repository.UserRepository
	appLoginRepo  repository.AppLoginRepository
	contactRepo   repository.ContactRepository
	privilegeRepo repository.PrivilegeRepository
	authService   AuthService
}

// NewUserService creates a new account administration service instance.
func NewUserService() UserService {
	return &userService{
		userRepo:      repository.NewUserRepository(),
		appLoginRepo:  repository.NewAppLoginRepository(),
		contactRepo:   repository.NewContactRepository(),
		privilegeRepo: repository.NewPrivilegeRepository(),
		authService:   NewAuthService(),
	}
}

// NewUserServiceWithRepos creates an account service over explicit
// repositories. Used by tests.
func NewUserServiceWithRepos(userRepo repository.UserRepository, appLoginRepo repository.AppLoginRepository, contactRepo repository.ContactRepository, privilegeRepo repository.PrivilegeRepository, authService AuthService) UserService {
	return &userService{
		userRepo:      userRepo,
		appLoginRepo:  appLoginRepo,
		contactRepo:   contactRepo,
		privilegeRepo: privilegeRepo,
		authService:   authService,
	}
}

// GetAllUsers lists the visible accounts with their details populated.
// When the catalog listing itself fails (restricted sessions cannot read
// DBA_USERS for arbitrary names), the caller's own record is resolved
// and returned as a single-element list so the console stays usable.
func (s *userService) GetAllUsers(currentUser string) []models.Account {
	accounts, err := s.userRepo.GetAll()
	if err != nil {
		logger.Warnf("Account listing unavailable, falling back to own record for %s: %v", currentUser, err)
		own, ownErr := s.userRepo.GetByName(currentUser)
		if ownErr != nil || own == nil {
			logger.Errorf("Error resolving own account record for %s: %v", currentUser, ownErr)
			return []models.Account{}
		}
		s.populateDetails(own)
		return []models.Account{*own}
	}

	for i := range accounts {
		s.populateDetails(&accounts[i])
	}
	return accounts
}

// GetUser fetches one account with details populated. Returns (nil, nil)
// when the account cannot be resolved.
func (s *userService) GetUser(username string) (*models.Account, error) {
	account, err := s.userRepo.GetByName(username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	s.populateDetails(account)
	return account, nil
}

// populateDetails fills the dependent fields of an account record. Each
// detail query degrades independently: a failure logs and leaves the
// field at its default instead of discarding the whole record.
func (s *userService) populateDetails(account *models.Account) {
	if account.DefaultTablespace != "" {
		quota, err := s.userRepo.GetQuota(account.Username, account.DefaultTablespace)
		if err != nil {
			logger.Errorf("Error fetching quota for %s on %s: %v", account.Username, account.DefaultTablespace, err)
			account.Quota = "N/A"
		} else {
			account.Quota = quota
		}
	} else {
		account.Quota = "N/A"
	}

	roles, err := s.userRepo.GetRoles(account.Username)
	if err != nil {
		logger.Errorf("Error fetching roles for %s: %v", account.Username, err)
	} else {
		account.Roles = roles
	}

	privileges, err := s.userRepo.GetPrivileges(account.Username)
	if err != nil {
		logger.Errorf("Error fetching privileges for %s: %v", account.Username, err)
	} else {
		account.Privileges = privileges
	}

	contact, err := s.contactRepo.GetByUsername(nil, account.Username)
	if err != nil {
		logger.Errorf("Error fetching contact profile for %s: %v", account.Username, err)
	} else if contact != nil {
		account.FullName = contact.FullName
		account.Email = contact.Email
		account.Phone = contact.Phone
		account.Address = contact.Address
	}
}

func (s *userService) GetUserRoles(username string) []string {
	roles, err := s.userRepo.GetRoles(username)
	if err != nil {
		logger.Errorf("Error fetching roles for %s: %v", username, err)
		return []string{}
	}
	return roles
}

func (s *userService) GetAvailableTablespaces() []string {
	return s.privilegeRepo.GetAvailableTablespaces()
}

// CreateUser provisions a new database account. The credential record is
// written before the catalog DDL so the account can sign in to the
// console as soon as the CREATE USER succeeds.
func (s *userService) CreateUser(username, password, defaultTablespace, temporaryTablespace, quota string) error {
	normalized := utils.NormalizeUsername(username)

	duplicate, err := s.userRepo.GetByName(normalized)
	if err != nil {
		return err
	}
	if duplicate != nil {
		return fmt.Errorf("ORA-01920: user name '%s' conflicts with another user or role name", normalized)
	}

	existing, err := s.appLoginRepo.FindByUsername(nil, normalized)
	if err != nil {
		return fmt.Errorf("failed to check existing credential record: %w", err)
	}

	hash, err := s.authService.EncodePassword(password)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := s.appLoginRepo.Save(nil, models.AppLoginUser{Username: normalized, PasswordHash: hash}); err != nil {
			return fmt.Errorf("failed to store credential record: %w", err)
		}
	} else {
		if err := s.appLoginRepo.UpdatePassword(nil, normalized, hash); err != nil {
			return fmt.Errorf("failed to update credential record: %w", err)
		}
	}

	if err := s.userRepo.Create(normalized, password, defaultTablespace, temporaryTablespace, quota); err != nil {
		// Roll the credential record back so a failed CREATE USER does
		// not leave a console login without a catalog account.
		if existing == nil {
			if delErr := s.appLoginRepo.Delete(nil, normalized); delErr != nil {
				logger.Errorf("Error removing orphaned credential record for %s: %v", normalized, delErr)
			}
		}
		return err
	}
	logger.Infof("Created database account %s", normalized)
	return nil
}

func (s *userService) UpdateUser(username, password, defaultTablespace, temporaryTablespace, quota, profile string) error {
	normalized := utils.NormalizeUsername(username)
	if err := s.userRepo.Alter(normalized, password, defaultTablespace, temporaryTablespace, quota, profile); err != nil {
		return err
	}
	if password != "" {
		hash, err := s.authService.EncodePassword(password)
		if err != nil {
			return err
		}
		if err := s.appLoginRepo.UpdatePassword(nil, normalized, hash); err != nil {
			logger.Errorf("Error syncing credential record for %s after password change: %v", normalized, err)
		}
	}
	logger.Infof("Altered database account %s", normalized)
	return nil
}

// UpdateContact stores the application-side contact profile for an account.
func (s *userService) UpdateContact(username string, contact models.ContactProfile) error {
	contact.Username = utils.NormalizeUsername(username)
	return s.contactRepo.Upsert(nil, contact)
}

func (s *userService) LockUser(username string) error {
	return s.userRepo.Lock(username)
}

func (s *userService) UnlockUser(username string) error {
	return s.userRepo.Unlock(username)
}

// DeleteUser removes the credential and contact records first, then
// drops the catalog account. The application-side deletes are
// best-effort: a stale credential row without a catalog account is
// harmless, the reverse would lock out an existing account.
func (s *userService) DeleteUser(username string) error {
	normalized := utils.NormalizeUsername(username)

	if err := s.appLoginRepo.Delete(nil, normalized); err != nil {
		logger.Errorf("Error deleting credential record for %s: %v", normalized, err)
	}
	if err := s.contactRepo.Delete(nil, normalized); err != nil {
		logger.Errorf("Error deleting contact profile for %s: %v", normalized, err)
	}

	if err := s.userRepo.Drop(normalized); err != nil {
		return err
	}
	logger.Infof("Dropped database account %s", normalized)
	return nil
}

// AddToAppLogin provisions a credential record for an existing catalog
// account so it can sign in to the console without first-login
// provisioning.
func (s *userService) AddToAppLogin(username, password string) error {
	normalized := utils.NormalizeUsername(username)

	existing, err := s.appLoginRepo.FindByUsername(nil, normalized)
	if err != nil {
		return fmt.Errorf("failed to check existing credential record: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("account %s already has a credential record", normalized)
	}

	account, err := s.userRepo.GetByName(normalized)
	if err != nil {
		return err
	}
	if account == nil {
		return fmt.Errorf("account %s does not exist in the catalog", normalized)
	}

	hash, err := s.authService.EncodePassword(password)
	if err != nil {
		return err
	}
	return s.appLoginRepo.Save(nil, models.AppLoginUser{Username: normalized, PasswordHash: hash})
}
