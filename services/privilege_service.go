package services

import (
	"oraconsole/models"
	"oraconsole/repository"
)

// Authorizer is the narrow authorization port consumed by the HTTP
// layer. Handlers gate actions through this single check rather than
// depending on the full privilege service.
type Authorizer interface {
	HasPrivilege(username, privilege string) bool
}

// PrivilegeService provides business logic for privilege administration.
type PrivilegeService interface {
	Authorizer
	GetAllPrivileges() []models.PrivilegeGrant
	GrantSystemPrivilege(privilege, grantee string, withAdminOption bool) error
	RevokeSystemPrivilege(privilege, grantee string) error
	GrantRole(roleName, grantee string, withAdminOption bool) error
	RevokeRole(roleName, grantee string) error
	GrantObjectPrivilege(privilege, object, grantee string, withGrantOption bool) error
	RevokeObjectPrivilege(privilege, object, grantee string) error
	GrantColumnPrivilege(privilege, object, column, grantee string) error
	GetAvailableTablespaces() []string
}

type privilegeService struct {
	privilegeRepo repository.PrivilegeRepository
}

// NewPrivilegeService creates a new privilege administration service instance.
func NewPrivilegeService() PrivilegeService {
	return &privilegeService{
		privilegeRepo: repository.NewPrivilegeRepository(),
	}
}

// NewPrivilegeServiceWithRepo creates a privilege service over an
// explicit repository. Used by tests.
func NewPrivilegeServiceWithRepo(repo repository.PrivilegeRepository) PrivilegeService {
	return &privilegeService{privilegeRepo: repo}
}

func (s *privilegeService) GetAllPrivileges() []models.PrivilegeGrant {
	return s.privilegeRepo.GetAll()
}

func (s *privilegeService) HasPrivilege(username, privilege string) bool {
	return s.privilegeRepo.HasPrivilege(username, privilege)
}

func (s *privilegeService) GrantSystemPrivilege(privilege, grantee string, withAdminOption bool) error {
	return s.privilegeRepo.GrantSystem(privilege, grantee, withAdminOption)
}

func (s *privilegeService) RevokeSystemPrivilege(privilege, grantee string) error {
	return s.privilegeRepo.RevokeSystem(privilege, grantee)
}

func (s *privilegeService) GrantRole(roleName, grantee string, withAdminOption bool) error {
	return s.privilegeRepo.GrantRole(roleName, grantee, withAdminOption)
}

func (s *privilegeService) RevokeRole(roleName, grantee string) error {
	return s.privilegeRepo.RevokeRole(roleName, grantee)
}

func (s *privilegeService) GrantObjectPrivilege(privilege, object, grantee string, withGrantOption bool) error {
	return s.privilegeRepo.GrantObject(privilege, object, grantee, withGrantOption)
}

func (s *privilegeService) RevokeObjectPrivilege(privilege, object, grantee string) error {
	return s.privilegeRepo.RevokeObject(privilege, object, grantee)
}

func (s *privilegeService) GrantColumnPrivilege(privilege, object, column, grantee string) error {
	return s.privilegeRepo.GrantColumn(privilege, object, column, grantee)
}

func (s *privilegeService) GetAvailableTablespaces() []string {
	return s.privilegeRepo.GetAvailableTablespaces()
}
