package repository

import (
	"fmt"
	"strings"

	"oraconsole/config"
	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/utils"
)

// RoleRepository provides catalog access for database roles.
type RoleRepository interface {
	GetAll() ([]models.Role, error)
	GetByName(roleName string) (*models.Role, error)
	GetPrivileges(roleName string) ([]string, error)
	GetMembers(roleName string) ([]string, error)
	Create(roleName, password string) error
	AlterPassword(roleName, password string) error
	Drop(roleName string) error
}

type roleRepository struct {
	catalog *Catalog
}

// NewRoleRepository creates a role repository over the global catalog pool.
func NewRoleRepository() RoleRepository {
	return &roleRepository{catalog: NewCatalog()}
}

// NewRoleRepositoryWithCatalog creates a role repository over an explicit
// catalog handle. Used by tests.
func NewRoleRepositoryWithCatalog(c *Catalog) RoleRepository {
	return &roleRepository{catalog: c}
}

func systemRoleFilter() string {
	names := make([]string, 0, len(config.Cfg.SystemRoles))
	for _, name := range config.Cfg.SystemRoles {
		names = append(names, fmt.Sprintf("'%s'", utils.EscapeSQL(name)))
	}
	return strings.Join(names, ", ")
}

// GetAll lists the non-built-in roles with their per-role detail.
func (r *roleRepository) GetAll() ([]models.Role, error) {
	query := fmt.Sprintf(`SELECT ROLE
		FROM DBA_ROLES
		WHERE ROLE NOT IN (%s)
		ORDER BY ROLE`, systemRoleFilter())

	names, err := r.catalog.queryStrings(query)
	if err != nil {
		return nil, err
	}

	roles := make([]models.Role, 0, len(names))
	for _, name := range names {
		role, err := r.GetByName(name)
		if err != nil {
			logger.Errorf("Error composing role %s: %v", name, err)
			continue
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// GetByName composes one role from its DBA_ROLES row, granted privileges
// and member accounts.
func (r *roleRepository) GetByName(roleName string) (*models.Role, error) {
	normalized := utils.NormalizeUsername(roleName)

	role := models.Role{RoleName: normalized}

	var passwordRequired string
	err := r.catalog.QueryRow(`SELECT PASSWORD_REQUIRED
		FROM DBA_ROLES
		WHERE ROLE = ?`, normalized).Scan(&passwordRequired)
	if err != nil {
		logger.Errorf("Error checking role password for %s: %v", normalized, err)
	}
	role.HasPassword = passwordRequired == "YES"

	privileges, err := r.GetPrivileges(normalized)
	if err != nil {
		return nil, err
	}
	role.Privileges = privileges

	members, err := r.GetMembers(normalized)
	if err != nil {
		return nil, err
	}
	role.AssignedUsers = members

	return &role, nil
}

// GetPrivileges lists the system privileges granted to a role.
func (r *roleRepository) GetPrivileges(roleName string) ([]string, error) {
	return r.catalog.queryStrings(`SELECT PRIVILEGE
		FROM DBA_SYS_PRIVS
		WHERE GRANTEE = ?
		ORDER BY PRIVILEGE`, utils.NormalizeUsername(roleName))
}

// GetMembers lists the grantees holding a role.
func (r *roleRepository) GetMembers(roleName string) ([]string, error) {
	return r.catalog.queryStrings(`SELECT GRANTEE
		FROM DBA_ROLE_PRIVS
		WHERE GRANTED_ROLE = ?
		ORDER BY GRANTEE`, utils.NormalizeUsername(roleName))
}

func (r *roleRepository) Create(roleName, password string) error {
	stmt, err := BuildCreateRole(roleName, password)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *roleRepository) AlterPassword(roleName, password string) error {
	stmt, err := BuildAlterRolePassword(roleName, password)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *roleRepository) Drop(roleName string) error {
	stmt, err := BuildDropRole(roleName)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}
