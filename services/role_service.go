package services

import (
	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/repository"
)

// RoleService provides business logic for database role administration.
type RoleService interface {
	GetAllRoles() []models.Role
	GetRole(roleName string) (*models.Role, error)
	CreateRole(roleName, password string) error
	UpdateRolePassword(roleName, password string) error
	DeleteRole(roleName string) error
}

type roleService struct {
	roleRepo repository.RoleRepository
}

// NewRoleService creates a new role administration service instance.
func NewRoleService() RoleService {
	return &roleService{
		roleRepo: repository.NewRoleRepository(),
	}
}

// NewRoleServiceWithRepo creates a role service over an explicit
// repository. Used by tests.
func NewRoleServiceWithRepo(repo repository.RoleRepository) RoleService {
	return &roleService{roleRepo: repo}
}

// GetAllRoles lists the non-built-in roles. Catalog failures degrade to
// an empty list so the listing page still renders.
func (s *roleService) GetAllRoles() []models.Role {
	roles, err := s.roleRepo.GetAll()
	if err != nil {
		logger.Errorf("Error listing roles: %v", err)
		return []models.Role{}
	}
	return roles
}

func (s *roleService) GetRole(roleName string) (*models.Role, error) {
	return s.roleRepo.GetByName(roleName)
}

func (s *roleService) CreateRole(roleName, password string) error {
	if err := s.roleRepo.Create(roleName, password); err != nil {
		return err
	}
	logger.Infof("Created role %s", roleName)
	return nil
}

func (s *roleService) UpdateRolePassword(roleName, password string) error {
	return s.roleRepo.AlterPassword(roleName, password)
}

func (s *roleService) DeleteRole(roleName string) error {
	if err := s.roleRepo.Drop(roleName); err != nil {
		return err
	}
	logger.Infof("Dropped role %s", roleName)
	return nil
}
