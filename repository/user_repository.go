package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"oraconsole/config"
	"oraconsole/models"
	"oraconsole/pkg/logger"
	"oraconsole/utils"
)

// UserRepository provides catalog access for database accounts.
type UserRepository interface {
	GetAll() ([]models.Account, error)
	GetByName(username string) (*models.Account, error)
	GetQuota(username, tablespace string) (string, error)
	GetRoles(username string) ([]string, error)
	GetPrivileges(username string) ([]models.PrivilegeGrant, error)
	Create(username, password, defaultTablespace, temporaryTablespace, quota string) error
	Alter(username, password, defaultTablespace, temporaryTablespace, quota, profile string) error
	Lock(username string) error
	Unlock(username string) error
	Drop(username string) error
}

type userRepository struct {
	catalog *Catalog
}

// NewUserRepository creates an account repository over the global catalog pool.
func NewUserRepository() UserRepository {
	return &userRepository{catalog: NewCatalog()}
}

// NewUserRepositoryWithCatalog creates an account repository over an
// explicit catalog handle. Used by tests.
func NewUserRepositoryWithCatalog(c *Catalog) UserRepository {
	return &userRepository{catalog: c}
}

const accountColumns = `USERNAME, ACCOUNT_STATUS, LOCK_DATE, CREATED,
		DEFAULT_TABLESPACE, TEMPORARY_TABLESPACE, PROFILE`

// systemAccountFilter builds the quoted NOT IN list from the configured
// system accounts.
func systemAccountFilter() string {
	names := make([]string, 0, len(config.Cfg.SystemAccounts))
	for _, name := range config.Cfg.SystemAccounts {
		names = append(names, fmt.Sprintf("'%s'", utils.EscapeSQL(name)))
	}
	return strings.Join(names, ", ")
}

func scanAccount(rows *sql.Rows) (*models.Account, error) {
	var acc models.Account
	var lockDate, created sql.NullTime
	var defaultTS, tempTS, profile sql.NullString

	if err := rows.Scan(&acc.Username, &acc.AccountStatus, &lockDate, &created,
		&defaultTS, &tempTS, &profile); err != nil {
		return nil, err
	}
	if lockDate.Valid {
		t := lockDate.Time
		acc.LockDate = &t
	}
	if created.Valid {
		t := created.Time
		acc.Created = &t
	}
	acc.DefaultTablespace = defaultTS.String
	acc.TemporaryTablespace = tempTS.String
	acc.Profile = profile.String
	return &acc, nil
}

// GetAll lists the accounts visible in DBA_USERS, excluding the
// configured built-in accounts and common (C##) accounts.
func (r *userRepository) GetAll() ([]models.Account, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM DBA_USERS
		WHERE USERNAME NOT IN (%s)
		  AND USERNAME NOT LIKE 'C##%%'
		ORDER BY USERNAME`, accountColumns, systemAccountFilter())

	rows, err := r.catalog.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}

// GetByName fetches a single account from DBA_USERS. When the account is
// not visible there (restricted connections lack catalog-read privilege
// for arbitrary names but can always resolve their own), the connected
// session identity is compared against the requested name and a minimal
// OPEN record is synthesized on match. Returns (nil, nil) when the
// account cannot be resolved either way.
func (r *userRepository) GetByName(username string) (*models.Account, error) {
	normalized := utils.NormalizeUsername(username)

	query := fmt.Sprintf(`SELECT %s
		FROM DBA_USERS
		WHERE USERNAME = ?`, accountColumns)

	rows, err := r.catalog.Query(query, normalized)
	if err != nil {
		logger.Errorf("Error querying DBA_USERS for %s: %v", normalized, err)
	} else {
		defer rows.Close()
		if rows.Next() {
			return scanAccount(rows)
		}
		if err := rows.Err(); err != nil {
			logger.Errorf("Error reading DBA_USERS row for %s: %v", normalized, err)
		}
	}

	// Fallback: resolve the connected session identity.
	var current string
	if err := r.catalog.QueryRow("SELECT USER FROM DUAL").Scan(&current); err != nil {
		logger.Errorf("Error resolving current session user: %v", err)
		return nil, nil
	}
	if !strings.EqualFold(current, normalized) {
		logger.Debugf("Current session user %s does not match requested account %s", current, normalized)
		return nil, nil
	}
	logger.Infof("Synthesized minimal account record for connected user %s", current)
	return &models.Account{
		Username:      strings.ToUpper(current),
		AccountStatus: "OPEN",
	}, nil
}

// GetQuota returns the account's quota on a tablespace, "0M" when no
// quota row exists.
func (r *userRepository) GetQuota(username, tablespace string) (string, error) {
	query := `SELECT
			CASE
				WHEN MAX_BYTES = -1 THEN 'UNLIMITED'
				ELSE TO_CHAR(MAX_BYTES / 1024 / 1024) || 'M'
			END AS QUOTA
		FROM DBA_TS_QUOTAS
		WHERE USERNAME = ? AND TABLESPACE_NAME = ?`

	var quota string
	err := r.catalog.QueryRow(query, utils.NormalizeUsername(username), tablespace).Scan(&quota)
	if err == sql.ErrNoRows {
		return "0M", nil
	}
	if err != nil {
		return "", err
	}
	return quota, nil
}

// GetRoles lists the roles granted to an account.
func (r *userRepository) GetRoles(username string) ([]string, error) {
	return r.catalog.queryStrings(`SELECT GRANTED_ROLE
		FROM DBA_ROLE_PRIVS
		WHERE GRANTEE = ?
		ORDER BY GRANTED_ROLE`, utils.NormalizeUsername(username))
}

// GetPrivileges lists the account's system privileges, both direct and
// held through granted roles. DBA_SYS_PRIVS carries no grantor column.
func (r *userRepository) GetPrivileges(username string) ([]models.PrivilegeGrant, error) {
	normalized := utils.NormalizeUsername(username)
	var grants []models.PrivilegeGrant

	rows, err := r.catalog.Query(`SELECT PRIVILEGE, GRANTEE, ADMIN_OPTION
		FROM DBA_SYS_PRIVS
		WHERE GRANTEE = ?`, normalized)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var g models.PrivilegeGrant
		var adminOption string
		if err := rows.Scan(&g.Privilege, &g.Grantee, &adminOption); err != nil {
			return nil, err
		}
		g.AdminOption = adminOption == "YES"
		g.Kind = models.GrantDirect
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roleRows, err := r.catalog.Query(`SELECT DISTINCT sp.PRIVILEGE, sp.ADMIN_OPTION, rp.GRANTED_ROLE
		FROM DBA_SYS_PRIVS sp
		INNER JOIN DBA_ROLE_PRIVS rp ON sp.GRANTEE = rp.GRANTED_ROLE
		WHERE rp.GRANTEE = ?`, normalized)
	if err != nil {
		return nil, err
	}
	defer roleRows.Close()
	for roleRows.Next() {
		var g models.PrivilegeGrant
		var adminOption string
		if err := roleRows.Scan(&g.Privilege, &adminOption, &g.RoleName); err != nil {
			return nil, err
		}
		g.Grantee = normalized
		g.AdminOption = adminOption == "YES"
		g.Kind = models.GrantRole
		grants = append(grants, g)
	}
	return grants, roleRows.Err()
}

// Create issues the CREATE USER statement and grants CREATE SESSION so
// the new account can connect.
func (r *userRepository) Create(username, password, defaultTablespace, temporaryTablespace, quota string) error {
	stmt, err := BuildCreateUser(username, password, defaultTablespace, temporaryTablespace, quota)
	if err != nil {
		return err
	}
	if _, err := r.catalog.Exec(stmt); err != nil {
		return err
	}

	grant, err := BuildGrantSystem("CREATE SESSION", username, false)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(grant)
	return err
}

func (r *userRepository) Alter(username, password, defaultTablespace, temporaryTablespace, quota, profile string) error {
	stmt, err := BuildAlterUser(username, password, defaultTablespace, temporaryTablespace, quota, profile)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *userRepository) Lock(username string) error {
	stmt, err := BuildAccountLock(username)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *userRepository) Unlock(username string) error {
	stmt, err := BuildAccountUnlock(username)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}

func (r *userRepository) Drop(username string) error {
	stmt, err := BuildDropUser(username)
	if err != nil {
		return err
	}
	_, err = r.catalog.Exec(stmt)
	return err
}
