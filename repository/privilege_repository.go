package repository

import (
	"fmt"
	"strings"

	"oraconsole/config"
	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/utils"
)

// PrivilegeRepository is the gateway to the catalog's privilege views
// and the GRANT/REVOKE DDL surface.
type PrivilegeRepository interface {
	GetAll() []models.PrivilegeGrant
	HasPrivilege(username, privilege string) bool
	GrantSystem(privilege, grantee string, withAdminOption bool) error
	RevokeSystem(privilege, grantee string) error
	GrantRole(roleName, grantee string, withAdminOption bool) error
	RevokeRole(roleName, grantee string) error
	GrantObject(privilege, object, grantee string, withGrantOption bool) error
	RevokeObject(privilege, object, grantee string) error
	GrantColumn(privilege, object, column, grantee string) error
	GetAvailableTablespaces() []string
}

type privilegeRepository struct {
	catalog *Catalog
}

// NewPrivilegeRepository creates a privilege repository over the global catalog pool.
func NewPrivilegeRepository() PrivilegeRepository {
	return &privilegeRepository{catalog: NewCatalog()}
}

// NewPrivilegeRepositoryWithCatalog creates a privilege repository over
// an explicit catalog handle. Used by tests.
func NewPrivilegeRepositoryWithCatalog(c *Catalog) PrivilegeRepository {
	return &privilegeRepository{catalog: c}
}

// GetAll unions direct system grants and object grants, excluding the
// superuser accounts. A catalog-access failure means no visibility, not
// an error: the result is an empty list either way.
func (r *privilegeRepository) GetAll() []models.PrivilegeGrant {
	grants := []models.PrivilegeGrant{}

	rows, err := r.catalog.Query(`SELECT PRIVILEGE, GRANTEE, ADMIN_OPTION
		FROM DBA_SYS_PRIVS
		WHERE GRANTEE NOT IN ('SYS', 'SYSTEM')
		ORDER BY GRANTEE, PRIVILEGE`)
	if err != nil {
		logger.Errorf("Error listing system privileges: %v", err)
		return grants
	}
	defer rows.Close()
	for rows.Next() {
		var g models.PrivilegeGrant
		var adminOption string
		if err := rows.Scan(&g.Privilege, &g.Grantee, &adminOption); err != nil {
			logger.Errorf("Error scanning system privilege row: %v", err)
			return grants
		}
		g.AdminOption = adminOption == "YES"
		g.Kind = models.GrantDirect
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		logger.Errorf("Error reading system privilege rows: %v", err)
		return grants
	}

	objRows, err := r.catalog.Query(`SELECT PRIVILEGE, GRANTEE, GRANTOR, TABLE_NAME, GRANTABLE
		FROM DBA_TAB_PRIVS
		WHERE GRANTEE NOT IN ('SYS', 'SYSTEM')
		ORDER BY GRANTEE, PRIVILEGE`)
	if err != nil {
		logger.Errorf("Error listing object privileges: %v", err)
		return grants
	}
	defer objRows.Close()
	for objRows.Next() {
		var g models.PrivilegeGrant
		var grantable string
		if err := objRows.Scan(&g.Privilege, &g.Grantee, &g.Grantor, &g.ObjectName, &grantable); err != nil {
			logger.Errorf("Error scanning object privilege row: %v", err)
			return grants
		}
		g.AdminOption = grantable == "YES"
		g.Kind = models.GrantObject
		grants = append(grants, g)
	}
	if err := objRows.Err(); err != nil {
		logger.Errorf("Error reading object privilege rows: %v", err)
	}

	logger.Debugf("Total privilege grants retrieved: %d", len(grants))
	return grants
}

// HasPrivilege reports whether an account holds a system privilege,
// directly or through any granted role. Two sequential existence checks,
// short-circuiting on the first hit; query failures count as absence.
func (r *privilegeRepository) HasPrivilege(username, privilege string) bool {
	normalized := utils.NormalizeUsername(username)

	count, err := r.catalog.queryCount(`SELECT COUNT(*)
		FROM DBA_SYS_PRIVS
		WHERE GRANTEE = ?
		  AND PRIVILEGE = ?`, normalized, privilege)
	if err != nil {
		logger.Errorf("Error checking direct privilege %s for %s: %v", privilege, normalized, err)
		return false
	}
	if count > 0 {
		return true
	}

	count, err = r.catalog.queryCount(`SELECT COUNT(*)
		FROM DBA_SYS_PRIVS
		WHERE GRANTEE IN (
			SELECT GRANTED_ROLE
			FROM DBA_ROLE_PRIVS
			WHERE GRANTEE = ?
		)
		  AND PRIVILEGE = ?`, normalized, privilege)
	if err != nil {
		logger.Errorf("Error checking role privilege %s for %s: %v", privilege, normalized, err)
		return false
	}
	return count > 0
}

func (r *privilegeRepository) GrantSystem(privilege, grantee string, withAdminOption bool) error {
	stmt, err := BuildGrantSystem(privilege, grantee, withAdminOption)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *privilegeRepository) RevokeSystem(privilege, grantee string) error {
	stmt, err := BuildRevokeSystem(privilege, grantee)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *privilegeRepository) GrantRole(roleName, grantee string, withAdminOption bool) error {
	stmt, err := BuildGrantRole(roleName, grantee, withAdminOption)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *privilegeRepository) RevokeRole(roleName, grantee string) error {
	stmt, err := BuildRevokeRole(roleName, grantee)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *privilegeRepository) GrantObject(privilege, object, grantee string, withGrantOption bool) error {
	stmt, err := BuildGrantObject(privilege, object, grantee, withGrantOption)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *privilegeRepository) RevokeObject(privilege, object, grantee string) error {
	stmt, err := BuildRevokeObject(privilege, object, grantee)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *privilegeRepository) GrantColumn(privilege, object, column, grantee string) error {
	stmt, err := BuildGrantColumn(privilege, object, column, grantee)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

// GetAvailableTablespaces lists tablespaces excluding the configured
// system areas. Failures degrade to an empty list.
func (r *privilegeRepository) GetAvailableTablespaces() []string {
	names := make([]string, 0, len(config.Cfg.SystemTablespaces))
	for _, name := range config.Cfg.SystemTablespaces {
		names = append(names, fmt.Sprintf("'%s'", utils.EscapeSQL(name)))
	}
	query := fmt.Sprintf(`SELECT TABLESPACE_NAME
		FROM DBA_TABLESPACES
		WHERE TABLESPACE_NAME NOT IN (%s)
		ORDER BY TABLESPACE_NAME`, strings.Join(names, ", "))

	tablespaces, err := r.catalog.queryStrings(query)
	if err != nil {
		logger.Errorf("Error listing tablespaces: %v", err)
		return []string{}
	}
	return tablespaces
}
